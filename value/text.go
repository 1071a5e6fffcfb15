package value

import "unique"

// TextFromString returns culture invariant text holding s.
func TextFromString(s string) Text {
	return Text{source: s}
}

// Text is text meant to be shown to users.
// It only holds its source string; localisation happens elsewhere.
type Text struct {
	source string
}

// ToString returns the source string of t.
func (t Text) ToString() string { return t.source }

// IsEmpty returns true if t holds no text.
func (t Text) IsEmpty() bool { return t.source == "" }

// NewName returns the interned name s.
func NewName(s string) Name {
	if s == "" {
		return Name{}
	}
	return Name{h: unique.Make(s)}
}

// Name is an interned, immutable string.
// Names compare with == in constant time. The zero Name is the empty name.
type Name struct {
	h unique.Handle[string]
}

// String returns the string n was made from.
func (n Name) String() string {
	if n.IsNone() {
		return ""
	}
	return n.h.Value()
}

// IsNone returns true if n is the empty name.
func (n Name) IsNone() bool {
	return n == Name{}
}
