package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
)

// MarshalYAML encodes the tree at root as a YAML document.
func MarshalYAML(root *archive.Node) ([]byte, error) {
	buff := new(bytes.Buffer)
	if err := EncodeYAML(buff, root); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// UnmarshalYAML decodes a YAML document into a tree.
func UnmarshalYAML(data []byte) (*archive.Node, error) {
	return DecodeYAML(bytes.NewReader(data))
}

// EncodeYAML writes the tree at root to w as a YAML document.
func EncodeYAML(w io.Writer, root *archive.Node) error {
	if err := checkRoot(root); err != nil {
		return err
	}

	doc, err := toYAML(root)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return encio.NewIOError(err, w, "yaml encode", 0)
	}
	if err := enc.Close(); err != nil {
		return encio.NewIOError(err, w, "yaml encode", 0)
	}
	return nil
}

// DecodeYAML reads one YAML document from r.
func DecodeYAML(r io.Reader) (*archive.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, encio.NewIOError(io.ErrUnexpectedEOF, r, "empty yaml document", 0)
		}
		return nil, encio.NewIOError(encio.ErrMalformed, r, "yaml: "+err.Error(), 0)
	}

	root, err := fromYAML("", &doc)
	if err != nil {
		return nil, err
	}
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	return root, nil
}

func toYAML(n *archive.Node) (*yaml.Node, error) {
	switch n.Kind {
	case archive.Object:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.Children))}
		for _, c := range n.Children {
			v, err := toYAML(c)
			if err != nil {
				return nil, err
			}
			y.Content = append(y.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name}, v)
		}
		return y, nil
	case archive.Sequence:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.Children))}
		for _, c := range n.Children {
			v, err := toYAML(c)
			if err != nil {
				return nil, err
			}
			y.Content = append(y.Content, v)
		}
		return y, nil
	default:
		y := new(yaml.Node)
		if err := y.Encode(n.Value); err != nil {
			return nil, encio.NewError(encio.ErrBadType, fmt.Sprintf("%q: %v", n.Name, err), 0)
		}
		return y, nil
	}
}

func fromYAML(name string, y *yaml.Node) (*archive.Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, "empty yaml document", 0)
		}
		return fromYAML(name, y.Content[0])
	case yaml.AliasNode:
		return fromYAML(name, y.Alias)
	case yaml.MappingNode:
		if len(y.Content)%2 != 0 {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("line %v: odd mapping content", y.Line), 0)
		}
		n := &archive.Node{Kind: archive.Object, Name: name, Children: make([]*archive.Node, 0, len(y.Content)/2)}
		for i := 0; i < len(y.Content); i += 2 {
			key := y.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("line %v: mapping keys must be scalars", key.Line), 0)
			}
			c, err := fromYAML(key.Value, y.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
		}
		return n, nil
	case yaml.SequenceNode:
		n := &archive.Node{Kind: archive.Sequence, Name: name, Children: make([]*archive.Node, 0, len(y.Content))}
		for _, item := range y.Content {
			c, err := fromYAML("", item)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
		}
		return n, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := y.Decode(&v); err != nil {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("line %v: %v", y.Line, err), 0)
		}
		return &archive.Node{Kind: archive.Leaf, Name: name, Value: v}, nil
	default:
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("line %v: unexpected yaml node kind %v", y.Line, y.Kind), 0)
	}
}
