// Package archive defines the primitive read/write surface every codec in arcs is written against,
// and provides the archives that implement it.
//
// An Archive is used in one direction only; Loading reports which. Every method takes a pointer:
// a saving archive reads the value behind it, a loading archive overwrites it. This lets a single
// codec function describe both directions, the way a serialize method does in other archive libraries.
//
// Names are advisory. Self-describing archives (the tree archive, and the CBOR and YAML documents built from it)
// key values by name, and positional archives (the binary archive) ignore them. An empty name means an unnamed value.
// Regardless of the archive, values must be read in the same order they were written.
package archive

import (
	"errors"
	"fmt"

	"github.com/stewi1014/arcs/encio"
)

// Archive is the primitive capability the codecs need.
//
// Archives are not thread safe, and are not assumed to be. Use one archive per goroutine.
type Archive interface {
	// Loading returns true if the archive reads values, and false if it writes them.
	Loading() bool

	Bool(name string, v *bool) error
	Uint8(name string, v *uint8) error
	Int32(name string, v *int32) error
	Uint32(name string, v *uint32) error
	Int64(name string, v *int64) error
	Uint64(name string, v *uint64) error
	Float32(name string, v *float32) error
	Float64(name string, v *float64) error
	String(name string, v *string) error

	// SizeTag writes *n, or reads into n, the number of elements in the container currently being serialized.
	// It must be called right after Begin, before any element.
	SizeTag(n *int) error

	// Begin starts a nested value; an object, a container or a map entry.
	// Every call must be matched with a call to End.
	Begin(name string) error

	// End finishes the nested value started by the last Begin.
	End() error
}

var (
	// ErrDuplicateName is returned when a self-describing archive is given two values with the same name inside one object.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnbalanced is returned when End is called without a matching Begin.
	ErrUnbalanced = errors.New("unbalanced Begin/End")
)

// checkPtr panics if v is nil.
// Passing a nil pointer to an archive is always a programming error.
func checkPtr[T any](v *T) {
	if v == nil {
		panic(encio.NewError(encio.ErrNilPointer, fmt.Sprintf("nil *%T given to archive", *new(T)), 1))
	}
}
