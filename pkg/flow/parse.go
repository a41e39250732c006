package flow

import (
	"bytes"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowboard/pkg/errors"
)

// Parse decodes a Flow document.
//
// The first literal occurrence of [Tag] is removed before parsing, wherever
// it appears in the text. Malformed YAML, duplicate pod names, a
// non-mapping document and non-scalar needs entries are reported as
// INVALID_YAML errors; non-scalar property values as INVALID_PROPERTY.
// No partial flow is returned on error.
//
// Top-level keys other than "with" and "pods" are ignored.
func Parse(data []byte) (*Flow, error) {
	data = bytes.Replace(data, []byte(Tag), nil, 1)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidYAML, err, "parse flow")
	}

	f := New()
	if len(doc.Content) == 0 {
		return f, nil
	}
	root := resolve(doc.Content[0])
	if isNull(root) {
		return f, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidYAML, "flow document must be a mapping (line %d)", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], resolve(root.Content[i+1])
		switch key.Value {
		case WithKey:
			if err := parseWith(val, f.With); err != nil {
				return nil, err
			}
		case PodsKey:
			pods, err := parsePods(val)
			if err != nil {
				return nil, err
			}
			f.Pods = pods
		}
	}
	return f, nil
}

// Read decodes a Flow document from r. It does not close r.
func Read(r io.Reader) (*Flow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(data)
}

// ReadFile decodes the Flow document at path.
func ReadFile(path string) (*Flow, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return Parse(data)
}

func parseWith(n *yaml.Node, with *orderedmap.OrderedMap[string, any]) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidYAML, "%q must be a mapping (line %d)", WithKey, n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == BoardKey {
			stringKeys(n.Content[i+1])
		}
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidYAML, err, "decode %s.%s", WithKey, n.Content[i].Value)
		}
		with.Set(n.Content[i].Value, v)
	}
	return nil
}

func parsePods(n *yaml.Node) ([]Pod, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidYAML, "%q must be a mapping (line %d)", PodsKey, n.Line)
	}

	seen := make(map[string]bool, len(n.Content)/2)
	pods := make([]Pod, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidYAML, "duplicate pod %q (line %d)", name, n.Content[i].Line)
		}
		seen[name] = true

		pod, err := parsePod(name, resolve(n.Content[i+1]))
		if err != nil {
			return nil, err
		}
		pods = append(pods, pod)
	}
	return pods, nil
}

func parsePod(name string, n *yaml.Node) (Pod, error) {
	pod := NewPod(name)
	if isNull(n) {
		return pod, nil
	}
	if n.Kind != yaml.MappingNode {
		return Pod{}, errors.New(errors.ErrCodeInvalidYAML, "pod %q must be a mapping (line %d)", name, n.Line)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, resolve(n.Content[i+1])
		if key == NeedsKey {
			needs, err := parseNeeds(name, val)
			if err != nil {
				return Pod{}, err
			}
			pod.Needs = needs
			continue
		}
		if isNull(val) {
			continue
		}
		if val.Kind != yaml.ScalarNode {
			return Pod{}, errors.New(errors.ErrCodeInvalidProperty,
				"pod %q property %q must be a scalar (line %d)", name, key, val.Line)
		}
		pod.Properties.Set(key, val.Value)
	}
	return pod, nil
}

func parseNeeds(pod string, n *yaml.Node) ([]string, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		if n.Value == "" {
			return nil, nil
		}
		return []string{n.Value}, nil
	case n.Kind == yaml.SequenceNode:
		needs := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return nil, errors.New(errors.ErrCodeInvalidYAML,
					"pod %q: needs entries must be pod names (line %d)", pod, item.Line)
			}
			needs = append(needs, item.Value)
		}
		return needs, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidYAML,
		"pod %q: needs must be a pod name or a list (line %d)", pod, n.Line)
}

// stringKeys tags every mapping key under n as a string so that canvas
// entries such as "1:" or "true:" decode under the same name the pods
// mapping gives them.
func stringKeys(n *yaml.Node) {
	n = resolve(n)
	if n == nil {
		return
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.ShortTag() != "!!merge" {
				k.Tag = "!!str"
			}
		}
	}
	for _, child := range n.Content {
		stringKeys(child)
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}
