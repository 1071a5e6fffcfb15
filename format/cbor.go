// Package format encodes the self-describing trees built by archive.TreeWriter as documents, and decodes them back.
//
// CBOR documents use Core Deterministic Encoding, so the same tree always produces the same bytes.
// YAML documents keep the order values were saved in, and are meant to be read by people.
//
// Both formats decode to trees that archive.TreeReader can load from, and a tree decoded from one
// can be encoded as the other; cmd/arcsconv does exactly that.
package format

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("format: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Object keys are always strings.
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic("format: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes the tree at root as a CBOR document.
func MarshalCBOR(root *archive.Node) ([]byte, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	data, err := encMode.Marshal(toCBOR(root))
	if err != nil {
		return nil, encio.NewError(encio.ErrBadType, err.Error(), 0)
	}
	return data, nil
}

// UnmarshalCBOR decodes a CBOR document into a tree.
func UnmarshalCBOR(data []byte) (*archive.Node, error) {
	var v interface{}
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, "cbor: "+err.Error(), 0)
	}
	return rootFromCBOR(v)
}

// EncodeCBOR writes the tree at root to w as a CBOR document.
func EncodeCBOR(w io.Writer, root *archive.Node) error {
	data, err := MarshalCBOR(root)
	if err != nil {
		return err
	}
	return encio.Write(data, w)
}

// DecodeCBOR reads one CBOR document from r.
func DecodeCBOR(r io.Reader) (*archive.Node, error) {
	var v interface{}
	if err := decMode.NewDecoder(r).Decode(&v); err != nil {
		return nil, encio.NewIOError(encio.ErrMalformed, r, "cbor: "+err.Error(), 0)
	}
	return rootFromCBOR(v)
}

// DiagnoseCBOR returns the CBOR diagnostic notation (RFC 8949 §8) of a document.
func DiagnoseCBOR(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

func toCBOR(n *archive.Node) interface{} {
	switch n.Kind {
	case archive.Object:
		m := make(map[string]interface{}, len(n.Children))
		for _, c := range n.Children {
			m[c.Name] = toCBOR(c)
		}
		return m
	case archive.Sequence:
		s := make([]interface{}, len(n.Children))
		for i, c := range n.Children {
			s[i] = toCBOR(c)
		}
		return s
	default:
		return n.Value
	}
}

func rootFromCBOR(v interface{}) (*archive.Node, error) {
	root := fromCBOR("", v)
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	return root, nil
}

func fromCBOR(name string, v interface{}) *archive.Node {
	switch v := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		n := &archive.Node{Kind: archive.Object, Name: name, Children: make([]*archive.Node, len(keys))}
		for i, k := range keys {
			n.Children[i] = fromCBOR(k, v[k])
		}
		return n
	case []interface{}:
		n := &archive.Node{Kind: archive.Sequence, Name: name, Children: make([]*archive.Node, len(v))}
		for i, item := range v {
			n.Children[i] = fromCBOR("", item)
		}
		return n
	default:
		return &archive.Node{Kind: archive.Leaf, Name: name, Value: v}
	}
}

func checkRoot(root *archive.Node) error {
	if root == nil {
		return encio.NewError(encio.ErrNilPointer, "nil root node", 1)
	}
	if root.Kind != archive.Object {
		return encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("document root is a %v, want an object", root.Kind), 1)
	}
	return nil
}
