package archive

import (
	"fmt"
	"math"

	"github.com/stewi1014/arcs/encio"
)

// NewTreeWriter returns a saving archive that builds a Node tree.
// The root is an object; a top level value saved without a name becomes "value0".
func NewTreeWriter() *TreeWriter {
	root := &Node{Kind: Object}
	return &TreeWriter{
		root:  root,
		stack: []*Node{root},
	}
}

// TreeWriter is a self-describing, saving archive.
type TreeWriter struct {
	root  *Node
	stack []*Node
}

// Root returns the root of the tree built so far.
func (a *TreeWriter) Root() *Node { return a.root }

// Loading implements Archive.
func (a *TreeWriter) Loading() bool { return false }

func (a *TreeWriter) add(name string, n *Node) error {
	parent := a.stack[len(a.stack)-1]

	switch parent.Kind {
	case Sequence:
		n.Name = ""
	default:
		if name == "" {
			name = positionalName(len(parent.Children))
		}
		if parent.Child(name) != nil {
			return encio.NewError(ErrDuplicateName, fmt.Sprintf("%q written twice", name), 1)
		}
		n.Name = name
	}

	parent.Children = append(parent.Children, n)
	return nil
}

func (a *TreeWriter) leaf(name string, v interface{}) error {
	return a.add(name, &Node{Kind: Leaf, Value: v})
}

// Bool implements Archive.
func (a *TreeWriter) Bool(name string, v *bool) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Uint8 implements Archive.
func (a *TreeWriter) Uint8(name string, v *uint8) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Int32 implements Archive.
func (a *TreeWriter) Int32(name string, v *int32) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Uint32 implements Archive.
func (a *TreeWriter) Uint32(name string, v *uint32) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Int64 implements Archive.
func (a *TreeWriter) Int64(name string, v *int64) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Uint64 implements Archive.
func (a *TreeWriter) Uint64(name string, v *uint64) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Float32 implements Archive.
func (a *TreeWriter) Float32(name string, v *float32) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// Float64 implements Archive.
func (a *TreeWriter) Float64(name string, v *float64) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// String implements Archive.
func (a *TreeWriter) String(name string, v *string) error {
	checkPtr(v)
	return a.leaf(name, *v)
}

// SizeTag implements Archive.
// It turns the object started by the last Begin into a sequence.
// The size itself is implied by the number of items.
func (a *TreeWriter) SizeTag(n *int) error {
	checkPtr(n)
	top := a.stack[len(a.stack)-1]
	if len(a.stack) == 1 || top.Kind != Object || len(top.Children) != 0 {
		return encio.NewError(encio.ErrBadType, "size tag must directly follow Begin", 0)
	}
	if *n < 0 {
		return encio.NewError(encio.ErrBadType, fmt.Sprintf("negative size tag %v", *n), 0)
	}

	top.Kind = Sequence
	top.Children = make([]*Node, 0, *n)
	return nil
}

// Begin implements Archive.
func (a *TreeWriter) Begin(name string) error {
	n := &Node{Kind: Object}
	if err := a.add(name, n); err != nil {
		return err
	}
	a.stack = append(a.stack, n)
	return nil
}

// End implements Archive.
func (a *TreeWriter) End() error {
	if len(a.stack) == 1 {
		return encio.NewError(ErrUnbalanced, "End called on the root", 0)
	}
	a.stack = a.stack[:len(a.stack)-1]
	return nil
}

// NewTreeReader returns a loading archive reading from the tree at root.
// root must be an object node, as built by TreeWriter or decoded by package format.
func NewTreeReader(root *Node) *TreeReader {
	return &TreeReader{
		stack: []frame{{node: root}},
	}
}

type frame struct {
	node *Node
	pos  int
}

// TreeReader is a self-describing, loading archive.
//
// Named values are found by name, so objects may be decoded from documents that reordered their keys.
// Unnamed values in objects are found by their position among the values read from that object.
type TreeReader struct {
	stack []frame
}

// Loading implements Archive.
func (a *TreeReader) Loading() bool { return true }

func (a *TreeReader) next(name string) (*Node, error) {
	f := &a.stack[len(a.stack)-1]

	var n *Node
	switch f.node.Kind {
	case Sequence:
		if f.pos >= len(f.node.Children) {
			return nil, encio.NewIOError(encio.ErrMalformed, a, fmt.Sprintf("sequence has only %v items", len(f.node.Children)), 1)
		}
		n = f.node.Children[f.pos]
	case Object:
		key := name
		if key == "" {
			key = positionalName(f.pos)
		}
		n = f.node.Child(key)
		if n == nil {
			return nil, encio.NewIOError(encio.ErrMalformed, a, fmt.Sprintf("missing field %q", key), 1)
		}
	default:
		return nil, encio.NewIOError(encio.ErrBadType, a, fmt.Sprintf("can't read %q from a %v", name, f.node.Kind), 1)
	}

	f.pos++
	return n, nil
}

func (a *TreeReader) leaf(name string) (interface{}, error) {
	n, err := a.next(name)
	if err != nil {
		return nil, err
	}
	if n.Kind != Leaf {
		return nil, encio.NewIOError(encio.ErrBadType, a, fmt.Sprintf("%q is a %v, not a value", n.Name, n.Kind), 1)
	}
	return n.Value, nil
}

func (a *TreeReader) badValue(name string, v interface{}, want string) error {
	return encio.NewIOError(encio.ErrBadType, a, fmt.Sprintf("%q holds %T(%v), want %v", name, v, v, want), 1)
}

// Bool implements Archive.
func (a *TreeReader) Bool(name string, v *bool) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	b, ok := raw.(bool)
	if !ok {
		return a.badValue(name, raw, "bool")
	}
	*v = b
	return nil
}

// Uint8 implements Archive.
func (a *TreeReader) Uint8(name string, v *uint8) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	n, ok := toUint64(raw)
	if !ok || n > math.MaxUint8 {
		return a.badValue(name, raw, "uint8")
	}
	*v = uint8(n)
	return nil
}

// Int32 implements Archive.
func (a *TreeReader) Int32(name string, v *int32) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	n, ok := toInt64(raw)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return a.badValue(name, raw, "int32")
	}
	*v = int32(n)
	return nil
}

// Uint32 implements Archive.
func (a *TreeReader) Uint32(name string, v *uint32) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	n, ok := toUint64(raw)
	if !ok || n > math.MaxUint32 {
		return a.badValue(name, raw, "uint32")
	}
	*v = uint32(n)
	return nil
}

// Int64 implements Archive.
func (a *TreeReader) Int64(name string, v *int64) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	n, ok := toInt64(raw)
	if !ok {
		return a.badValue(name, raw, "int64")
	}
	*v = n
	return nil
}

// Uint64 implements Archive.
func (a *TreeReader) Uint64(name string, v *uint64) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	n, ok := toUint64(raw)
	if !ok {
		return a.badValue(name, raw, "uint64")
	}
	*v = n
	return nil
}

// Float32 implements Archive.
func (a *TreeReader) Float32(name string, v *float32) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	f, ok := toFloat64(raw)
	if !ok {
		return a.badValue(name, raw, "float32")
	}
	*v = float32(f)
	return nil
}

// Float64 implements Archive.
func (a *TreeReader) Float64(name string, v *float64) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	f, ok := toFloat64(raw)
	if !ok {
		return a.badValue(name, raw, "float64")
	}
	*v = f
	return nil
}

// String implements Archive.
func (a *TreeReader) String(name string, v *string) error {
	checkPtr(v)
	raw, err := a.leaf(name)
	if err != nil {
		return err
	}
	s, ok := raw.(string)
	if !ok {
		return a.badValue(name, raw, "string")
	}
	*v = s
	return nil
}

// SizeTag implements Archive.
func (a *TreeReader) SizeTag(n *int) error {
	checkPtr(n)
	f := &a.stack[len(a.stack)-1]
	if f.node.Kind != Sequence {
		return encio.NewIOError(encio.ErrMalformed, a, fmt.Sprintf("size tag read from %q, which is a %v", f.node.Name, f.node.Kind), 0)
	}
	*n = len(f.node.Children)
	return nil
}

// Begin implements Archive.
func (a *TreeReader) Begin(name string) error {
	n, err := a.next(name)
	if err != nil {
		return err
	}
	if n.Kind == Leaf {
		return encio.NewIOError(encio.ErrBadType, a, fmt.Sprintf("%q holds %T(%v), want an object or sequence", name, n.Value, n.Value), 0)
	}
	a.stack = append(a.stack, frame{node: n})
	return nil
}

// End implements Archive.
func (a *TreeReader) End() error {
	if len(a.stack) == 1 {
		return encio.NewError(ErrUnbalanced, "End called on the root", 0)
	}
	a.stack = a.stack[:len(a.stack)-1]
	return nil
}
