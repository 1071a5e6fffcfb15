package value

import "cmp"

// Interval is the closed range [Min, Max].
type Interval[E cmp.Ordered] struct {
	Min, Max E
}

// IsValid returns true if Min is not after Max.
func (i Interval[E]) IsValid() bool { return i.Min <= i.Max }

// Contains returns true if v is inside i.
func (i Interval[E]) Contains(v E) bool { return v >= i.Min && v <= i.Max }

// NewSet returns a set holding elems.
func NewSet[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Set is an unordered collection of unique elements.
type Set[E comparable] map[E]struct{}

// Add adds e to s. Adding an element already in s does nothing.
func (s Set[E]) Add(e E) { s[e] = struct{}{} }

// Has returns true if e is in s.
func (s Set[E]) Has(e E) bool {
	_, ok := s[e]
	return ok
}

// Len returns the number of elements in s.
func (s Set[E]) Len() int { return len(s) }
