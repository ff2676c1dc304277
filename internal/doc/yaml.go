package doc

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// FromNode converts a decoded YAML node into a Value, keeping mapping order.
//
// Scalars are classified by their resolved tag: !!null, !!bool, !!int, !!float
// and !!str map to the matching Value; timestamps and any other tag keep their
// literal text as String.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null{}, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromNode(n.Content[0])

	case yaml.AliasNode:
		return FromNode(n.Alias)

	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			val, err := FromNode(valNode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			m.Set(keyNode.Value, val)
		}
		return m, nil

	case yaml.SequenceNode:
		list := make(List, 0, len(n.Content))
		for i, elem := range n.Content {
			val, err := FromNode(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, val)
		}
		return list, nil

	case yaml.ScalarNode:
		return scalarFromNode(n)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		// Out of int64 range: keep the magnitude as a float.
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToNode converts a Value into a YAML node tree. Maps keep their order.
func ToNode(v Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range val {
			child, err := ToNode(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case *Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.Keys() {
			elem, _ := val.Get(k)
			child, err := ToNode(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			key := &yaml.Node{}
			if err := key.Encode(k); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key, child)
		}
		return n, nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite float %v cannot be written", f)
		}
		n := &yaml.Node{}
		if err := n.Encode(f); err != nil {
			return nil, err
		}
		return n, nil
	case Bool, Int, String:
		n := &yaml.Node{}
		if err := n.Encode(Native(val)); err != nil {
			return nil, err
		}
		return n, nil
	case Time:
		n := &yaml.Node{}
		if err := n.Encode(val.Time); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// MarshalYAML implements yaml.Marshaler so an ordered Map can be handed to
// yaml.Marshal directly.
func (m *Map) MarshalYAML() (any, error) {
	return ToNode(m)
}

// Encode writes v as a YAML document with two-space indentation.
func Encode(w io.Writer, v Value) error {
	n, err := ToNode(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalText renders v as YAML text.
func MarshalText(v Value) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Decode parses a single YAML document from text.
// Empty text decodes to an empty Map.
func Decode(text string) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(text), &n); err != nil {
		return nil, err
	}
	if n.Kind == 0 {
		return NewMap(), nil
	}
	return FromNode(&n)
}
