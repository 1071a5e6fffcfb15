package archive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the shape of a Node.
type Kind uint8

const (
	// Leaf nodes hold a single scalar in Value.
	Leaf Kind = iota
	// Object nodes hold named children. Unnamed values are named by their position; value0, value1...
	Object
	// Sequence nodes hold unnamed children, and are created by SizeTag.
	Sequence
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Object:
		return "object"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Node is an element of a self-describing document.
// TreeWriter builds them, TreeReader reads them, and package format converts them to and from CBOR and YAML.
type Node struct {
	Kind Kind

	// Name is the key of the node in its parent object. It is empty for sequence items and the root.
	Name string

	// Value is the scalar held by a Leaf.
	// TreeWriter stores the Go value it was given; decoded documents hold whatever their decoder produced.
	// TreeReader converts between numeric types as long as the value fits.
	Value interface{}

	Children []*Node
}

// Child returns the child of an object node with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// String returns a compact, single line representation of the tree for debugging.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.Name != "" {
		sb.WriteString(n.Name)
		sb.WriteString(": ")
	}

	switch n.Kind {
	case Leaf:
		fmt.Fprintf(sb, "%#v", n.Value)
	case Object, Sequence:
		open, end := "{", "}"
		if n.Kind == Sequence {
			open, end = "[", "]"
		}
		sb.WriteString(open)
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.write(sb)
		}
		sb.WriteString(end)
	}
}

func positionalName(pos int) string {
	return "value" + strconv.Itoa(pos)
}

// The conversions below accept any Go numeric type since leaves come from
// TreeWriter (exact Go types), the CBOR decoder (uint64, int64, float64) and the YAML decoder (int, uint64, float64).

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case float32, float64:
		f, _ := toFloat64(n)
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	default:
		i, ok := toInt64(v)
		if !ok || i < 0 {
			return 0, false
		}
		return uint64(i), true
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		i, ok := toInt64(v)
		return float64(i), ok
	}
}
