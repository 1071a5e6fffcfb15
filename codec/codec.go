// Package codec translates values to and from an archive.Archive.
//
// A Codec is a single function that serializes in both directions; it branches on ar.Loading() where the
// directions differ. Codecs for kinds whose save and load sides are structured differently are built
// from two functions with Split, and kinds that reduce to a single string are built with Minimal.
//
// Codecs compose. Container codecs take the codecs of their elements:
//
//	points := codec.Map(codec.String, codec.Slice(codec.Vector))
//	err := points(ar, "points", &m)
//
// Codecs never recover from archive errors; they return them as is.
package codec

import (
	"github.com/stewi1014/arcs/archive"
)

// Codec serializes a *T to or from an archive under the given name.
type Codec[T any] func(ar archive.Archive, name string, v *T) error

// Primitive codecs.
var (
	Bool    Codec[bool]    = archive.Archive.Bool
	Uint8   Codec[uint8]   = archive.Archive.Uint8
	Int32   Codec[int32]   = archive.Archive.Int32
	Uint32  Codec[uint32]  = archive.Archive.Uint32
	Int64   Codec[int64]   = archive.Archive.Int64
	Uint64  Codec[uint64]  = archive.Archive.Uint64
	Float32 Codec[float32] = archive.Archive.Float32
	Float64 Codec[float64] = archive.Archive.Float64

	// String is the codec for strings. Go strings are already the portable byte string archives store.
	String Codec[string] = archive.Archive.String
)

// SaveFunc writes v to ar.
type SaveFunc[T any] func(ar archive.Archive, name string, v T) error

// LoadFunc reads a T from ar.
type LoadFunc[T any] func(ar archive.Archive, name string) (T, error)

// Split returns a Codec that saves with save and loads with load.
// It is used for kinds where the two directions don't mirror each other.
func Split[T any](save SaveFunc[T], load LoadFunc[T]) Codec[T] {
	return func(ar archive.Archive, name string, v *T) error {
		if !ar.Loading() {
			return save(ar, name, *v)
		}

		loaded, err := load(ar, name)
		if err != nil {
			return err
		}
		*v = loaded
		return nil
	}
}

// Minimal returns a Codec that stores a T as a single string.
// Errors from parse are returned as is; parse should wrap encio.ErrMalformed.
func Minimal[T any](format func(T) string, parse func(string) (T, error)) Codec[T] {
	return func(ar archive.Archive, name string, v *T) error {
		if !ar.Loading() {
			s := format(*v)
			return ar.String(name, &s)
		}

		var s string
		if err := ar.String(name, &s); err != nil {
			return err
		}

		parsed, err := parse(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}
}

// Field is one step of serializing an object.
type Field func(ar archive.Archive) error

// Bind returns the Field that serializes v with c under name.
func Bind[T any](c Codec[T], name string, v *T) Field {
	return func(ar archive.Archive) error {
		return c(ar, name, v)
	}
}

// Object serializes a nested object called name, made of fields in order.
func Object(ar archive.Archive, name string, fields ...Field) error {
	if err := ar.Begin(name); err != nil {
		return err
	}

	for _, field := range fields {
		if err := field(ar); err != nil {
			return err
		}
	}

	return ar.End()
}
