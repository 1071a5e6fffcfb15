// Package arcs serializes engine values to binary, CBOR and YAML documents.
//
// Values are described by codecs from arcs/codec, which are written once against the archive.Archive interface
// and work with every format:
//
//	data, err := arcs.Marshal(codec.Transform, &t, &arcs.Config{Format: arcs.YAML})
//	...
//	err = arcs.Unmarshal(data, codec.Transform, &loaded, &arcs.Config{Format: arcs.YAML})
//
// Polymorphic class references are stored as 32 bit identifiers from an arcs/registry.Registry; see codec.ClassOf.
//
// The binary format is positional; it is compact but only readable by the same codecs that wrote it.
// Binary documents are sealed in an arcs/envelope, which checks their integrity and optionally compresses them.
// CBOR and YAML documents are self-describing, name every value, and can be converted between each other with Convert or cmd/arcsconv.
//
// arcs/encio provides io and error types shared by every package.
package arcs

import (
	"fmt"

	"github.com/stewi1014/arcs/encio"
)

// Format is a document format.
type Format uint8

const (
	// Binary is the compact positional format, sealed in an envelope.
	Binary Format = iota

	// CBOR is deterministic, self-describing CBOR.
	CBOR

	// YAML is self-describing YAML, meant to be read and edited by people.
	YAML
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case CBOR:
		return "cbor"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// SelfDescribing returns true if documents in f name their values.
func (f Format) SelfDescribing() bool {
	return f == CBOR || f == YAML
}

// ParseFormat parses a format name, as returned by Format.String.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "binary", "bin":
		return Binary, nil
	case "cbor":
		return CBOR, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return 0, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unknown format %q", name), 0)
	}
}
