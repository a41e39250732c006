package flow

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// indent matches the two-space style the browser editor writes.
const indent = 2

// Encode writes f as a Flow document: the [Tag] line followed by the
// "with" and "pods" mappings. A pod with one dependency writes needs
// as a bare name, with several as a list, and with none omits it.
func Encode(w io.Writer, f *Flow) error {
	root, err := f.node()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, Tag+"\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Marshal returns the encoded Flow document.
func Marshal(f *Flow) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes f to the file at path.
func WriteFile(f *Flow, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *Flow) node() (*yaml.Node, error) {
	with := mappingNode()
	if f.With != nil {
		for p := f.With.Oldest(); p != nil; p = p.Next() {
			v, err := valueNode(p.Value)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", WithKey, p.Key, err)
			}
			with.Content = append(with.Content, keyNode(p.Key), v)
		}
	}

	pods := mappingNode()
	for _, pod := range f.Pods {
		n, err := pod.node()
		if err != nil {
			return nil, fmt.Errorf("pod %s: %w", pod.Name, err)
		}
		pods.Content = append(pods.Content, keyNode(pod.Name), n)
	}

	root := mappingNode()
	root.Content = append(root.Content, keyNode(WithKey), with, keyNode(PodsKey), pods)
	return root, nil
}

func (p Pod) node() (*yaml.Node, error) {
	n := mappingNode()
	if p.Properties != nil {
		for pair := p.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == NeedsKey {
				continue
			}
			v, err := valueNode(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pair.Key, err)
			}
			n.Content = append(n.Content, keyNode(pair.Key), v)
		}
	}

	switch len(p.Needs) {
	case 0:
	case 1:
		n.Content = append(n.Content, keyNode(NeedsKey), keyNode(p.Needs[0]))
	default:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, need := range p.Needs {
			seq.Content = append(seq.Content, keyNode(need))
		}
		n.Content = append(n.Content, keyNode(NeedsKey), seq)
	}
	return n, nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// keyNode encodes s as a string scalar, quoting it when it would
// otherwise read back as another type.
func keyNode(s string) *yaml.Node {
	var n yaml.Node
	_ = n.Encode(s)
	return &n
}

func valueNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}
