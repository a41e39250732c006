package flow

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// Tag is the YAML tag line that prefixes every Flow document.
	Tag = "!Flow"

	// WithKey is the top-level key holding passthrough metadata.
	WithKey = "with"

	// PodsKey is the top-level key holding the pod mapping.
	PodsKey = "pods"

	// BoardKey is the key under "with" that holds editor state.
	BoardKey = "board"

	// CanvasKey is the key under "with.board" that holds saved positions.
	CanvasKey = "canvas"

	// NeedsKey is the reserved pod key naming dependencies.
	NeedsKey = "needs"
)

// Flow is a parsed Flow document.
type Flow struct {
	// With holds the top-level "with" mapping in document order.
	// Values are plain decoded YAML (strings, numbers, maps, lists).
	With *orderedmap.OrderedMap[string, any]

	// Pods are the pipeline steps in document order.
	Pods []Pod
}

// Pod is a single pipeline step.
type Pod struct {
	Name string

	// Properties never contains NeedsKey. Parsed values are strings;
	// exported values may be typed (see package proptype).
	Properties *orderedmap.OrderedMap[string, any]

	// Needs is nil when the pod declares no dependencies.
	Needs []string
}

// Point is a saved canvas coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Canvas maps pod names to saved positions.
type Canvas map[string]Point

// New returns an empty flow.
func New() *Flow {
	return &Flow{With: orderedmap.New[string, any]()}
}

// NewPod returns a pod with an empty property map.
func NewPod(name string) Pod {
	return Pod{Name: name, Properties: orderedmap.New[string, any]()}
}

// Pod returns the pod with the given name.
func (f *Flow) Pod(name string) (Pod, bool) {
	for _, p := range f.Pods {
		if p.Name == name {
			return p, true
		}
	}
	return Pod{}, false
}

// PodNames returns pod names in document order.
func (f *Flow) PodNames() []string {
	names := make([]string, len(f.Pods))
	for i, p := range f.Pods {
		names[i] = p.Name
	}
	return names
}
