// Package proptype maps pod property names to their declared value types.
//
// Chart nodes hold every property as a string. When a chart is exported
// back to a Flow, properties declared as [Bool] are written as YAML
// booleans instead; everything else stays a string. A [Registry] is
// read-only once built and is handed to the exporter explicitly.
//
// The registry file is a JSON (or TOML) list of entries:
//
//	[{"name": "read_only", "type": "bool"}, ...]
//
// [Default] returns the registry built from the embedded pod argument list.
package proptype

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowboard/pkg/errors"
)

// Type is a declared property value type.
type Type string

// Known types. Only Bool changes how a value is exported.
const (
	String Type = "string"
	Int    Type = "int"
	Bool   Type = "bool"
)

// Entry is one property declaration in a registry file.
type Entry struct {
	Name        string `json:"name" toml:"name"`
	Type        Type   `json:"type" toml:"type"`
	Description string `json:"description,omitempty" toml:"description"`
}

// Registry is a read-only property name to type lookup. A nil Registry
// knows no properties.
type Registry struct {
	types map[string]Type
}

// New builds a registry from a name to type map. The map is copied.
func New(types map[string]Type) *Registry {
	r := &Registry{types: make(map[string]Type, len(types))}
	for name, t := range types {
		r.types[name] = t
	}
	return r
}

// FromEntries builds a registry from declarations. Later entries override
// earlier ones with the same name; an empty type means String.
func FromEntries(entries []Entry) (*Registry, error) {
	r := &Registry{types: make(map[string]Type, len(entries))}
	for i, e := range entries {
		if err := errors.ValidatePropertyName(e.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProperty, err, "entry %d", i)
		}
		t := Type(strings.ToLower(strings.TrimSpace(string(e.Type))))
		if t == "" {
			t = String
		}
		r.types[e.Name] = t
	}
	return r, nil
}

// TypeOf returns the declared type of a property.
func (r *Registry) TypeOf(name string) (Type, bool) {
	if r == nil {
		return "", false
	}
	t, ok := r.types[name]
	return t, ok
}

// Decode converts a stored string value to its export value: Bool
// properties become value == "true", everything else is returned as is.
func (r *Registry) Decode(name, value string) any {
	if t, ok := r.TypeOf(name); ok && t == Bool {
		return value == "true"
	}
	return value
}

// With returns a new registry with overrides applied on top of r.
func (r *Registry) With(overrides map[string]Type) *Registry {
	out := New(nil)
	if r != nil {
		for name, t := range r.types {
			out.types[name] = t
		}
	}
	for name, t := range overrides {
		out.types[name] = t
	}
	return out
}

// Names returns the registered property names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered properties.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.types)
}

// Load reads a JSON registry file.
func Load(rd io.Reader) (*Registry, error) {
	var entries []Entry
	if err := json.NewDecoder(rd).Decode(&entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode property types")
	}
	return FromEntries(entries)
}

// tomlFile is the TOML registry layout: a [[property]] array of tables.
type tomlFile struct {
	Property []Entry `toml:"property"`
}

// LoadTOML reads a TOML registry file.
func LoadTOML(rd io.Reader) (*Registry, error) {
	var f tomlFile
	if _, err := toml.NewDecoder(rd).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode property types")
	}
	return FromEntries(f.Property)
}

// LoadFile reads a registry file, choosing TOML for a .toml extension and
// JSON otherwise.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "property types %s", path)
		}
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(bytes.NewReader(data))
	}
	return Load(bytes.NewReader(data))
}

//go:embed properties.json
var defaultProperties []byte

var loadDefault = sync.OnceValue(func() *Registry {
	r, err := Load(bytes.NewReader(defaultProperties))
	if err != nil {
		panic("proptype: embedded properties.json: " + err.Error())
	}
	return r
})

// Default returns the registry built from the embedded pod argument list.
// It is parsed once and shared; registries are never mutated.
func Default() *Registry {
	return loadDefault()
}
