package codec

import (
	"cmp"
	"fmt"
	"unsafe"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/value"
)

// preallocBytes caps how much memory a loading container reserves before its elements have been read.
// Beyond it, containers grow as elements arrive, so a size tag alone can't cause a large allocation.
const preallocBytes = 1 << 16

// checkSize rejects size tags for more than encio.TooBig bytes of elements.
func checkSize(ar archive.Archive, n int, elemSize uintptr) error {
	if n < 0 || (elemSize > 0 && uintptr(n) > encio.TooBig/elemSize) {
		return encio.NewIOError(encio.ErrMalformed, ar, fmt.Sprintf("size tag %v is too big for %v byte elements", n, elemSize), 1)
	}
	return nil
}

// prealloc returns how many of n elements to reserve room for up front.
func prealloc(n int, elemSize uintptr) int {
	return min(n, int(preallocBytes/max(elemSize, 1)))
}

// Slice returns a Codec for slices with elements serialized by elem.
//
// Loading reuses the capacity of the destination and overwrites its elements in place.
func Slice[E any](elem Codec[E]) Codec[[]E] {
	elemSize := unsafe.Sizeof(*new(E))

	return func(ar archive.Archive, name string, s *[]E) error {
		if err := ar.Begin(name); err != nil {
			return err
		}

		n := len(*s)
		if err := ar.SizeTag(&n); err != nil {
			return err
		}

		if !ar.Loading() {
			for i := range *s {
				if err := elem(ar, "", &(*s)[i]); err != nil {
					return err
				}
			}
			return ar.End()
		}

		if err := checkSize(ar, n, elemSize); err != nil {
			return err
		}
		if *s == nil {
			*s = make([]E, 0, prealloc(n, elemSize))
		} else {
			*s = (*s)[:0]
		}

		for i := 0; i < n; i++ {
			if i < cap(*s) {
				*s = (*s)[:i+1]
			} else {
				*s = append(*s, *new(E))
			}
			if err := elem(ar, "", &(*s)[i]); err != nil {
				return err
			}
		}

		return ar.End()
	}
}

// Map returns a Codec for maps with keys serialized by key and values by val.
//
// Each pair is stored as a nested entry holding "key" then "value".
// Loading empties the destination before inserting; if a key appears twice the last value wins.
func Map[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	entrySize := unsafe.Sizeof(*new(K)) + unsafe.Sizeof(*new(V))
	entry := func(ar archive.Archive, k *K, v *V) error {
		return Object(ar, "",
			Bind(key, "key", k),
			Bind(val, "value", v),
		)
	}

	return func(ar archive.Archive, name string, m *map[K]V) error {
		if err := ar.Begin(name); err != nil {
			return err
		}

		n := len(*m)
		if err := ar.SizeTag(&n); err != nil {
			return err
		}

		if ar.Loading() {
			if err := checkSize(ar, n, entrySize); err != nil {
				return err
			}
			if *m == nil {
				*m = make(map[K]V, prealloc(n, entrySize))
			} else {
				clear(*m)
			}

			for i := 0; i < n; i++ {
				var (
					k K
					v V
				)
				if err := entry(ar, &k, &v); err != nil {
					return err
				}
				(*m)[k] = v
			}
		} else {
			for k, v := range *m {
				if err := entry(ar, &k, &v); err != nil {
					return err
				}
			}
		}

		return ar.End()
	}
}

// Set returns a Codec for sets with elements serialized by elem.
// Loading empties the destination first; duplicate elements collapse into one.
func Set[E comparable](elem Codec[E]) Codec[value.Set[E]] {
	elemSize := unsafe.Sizeof(*new(E))

	return func(ar archive.Archive, name string, s *value.Set[E]) error {
		if err := ar.Begin(name); err != nil {
			return err
		}

		n := len(*s)
		if err := ar.SizeTag(&n); err != nil {
			return err
		}

		if ar.Loading() {
			if err := checkSize(ar, n, elemSize); err != nil {
				return err
			}
			if *s == nil {
				*s = make(value.Set[E], prealloc(n, elemSize))
			} else {
				clear(*s)
			}

			for i := 0; i < n; i++ {
				var e E
				if err := elem(ar, "", &e); err != nil {
					return err
				}
				s.Add(e)
			}
		} else {
			for e := range *s {
				if err := elem(ar, "", &e); err != nil {
					return err
				}
			}
		}

		return ar.End()
	}
}

// Interval returns a Codec for intervals with bounds serialized by elem, stored as Min, Max.
func Interval[E cmp.Ordered](elem Codec[E]) Codec[value.Interval[E]] {
	return func(ar archive.Archive, name string, v *value.Interval[E]) error {
		return Object(ar, name,
			Bind(elem, "Min", &v.Min),
			Bind(elem, "Max", &v.Max),
		)
	}
}
