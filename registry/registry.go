// Package registry maps 32 bit class identifiers to class handles and back.
//
// Archives store a class reference as a single int32. A Registry says which class each identifier means;
// both sides of an archive must be given registries that agree. Identifiers are either chosen by the caller with RegisterID,
// or allocated with Register, which hands out the lowest free identifier starting just above InvalidID.
//
// InvalidID is never assigned; it is what an unregistered class is saved as.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/stewi1014/arcs/encio"
)

// InvalidID is the identifier written for a class that isn't registered.
const InvalidID int32 = math.MinInt32

var (
	// ErrReservedID is returned when registering a class under InvalidID.
	ErrReservedID = errors.New("identifier is reserved")

	// ErrEmptyHandle is returned when registering the zero handle.
	// It would be indistinguishable from a failed lookup.
	ErrEmptyHandle = errors.New("empty handle")

	// ErrExhausted is returned by Register when every identifier is in use.
	ErrExhausted = errors.New("no free identifier")
)

// Entry is a single registration.
type Entry[H comparable] struct {
	ID     int32
	Handle H
}

// New returns a new, empty Registry.
func New[H comparable]() *Registry[H] {
	return &Registry[H]{
		byID:     make(map[int32]H),
		byHandle: make(map[H][]int32),
		next:     int64(InvalidID) + 1,
	}
}

// Registry is a bidirectional identifier to handle map.
// A handle may be registered under several identifiers; an identifier has at most one handle.
//
// It is safe for concurrent use.
// The zero value is not usable, use New.
type Registry[H comparable] struct {
	mutex    sync.RWMutex
	byID     map[int32]H
	byHandle map[H][]int32 // sorted ascending

	// Every identifier in [InvalidID+1, next) is in use; registrations are never removed except by Clear.
	// int64 so it can go one past math.MaxInt32.
	next int64
}

// RegisterID registers h under id. If id is already registered, the old handle is replaced.
func (r *Registry[H]) RegisterID(id int32, h H) error {
	if id == InvalidID {
		return encio.NewError(ErrReservedID, fmt.Sprintf("cannot register %v under %v", h, id), 0)
	}
	var zero H
	if h == zero {
		return encio.NewError(ErrEmptyHandle, fmt.Sprintf("cannot register the empty handle under %v", id), 0)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if old, ok := r.byID[id]; ok {
		if old == h {
			return nil
		}
		encio.Warnings.Debug("replacing class registration", slog.Int("id", int(id)), slog.Any("old", old), slog.Any("new", h))
		r.unindex(id, old)
	}

	r.byID[id] = h
	r.index(id, h)
	return nil
}

// Register registers h under the lowest free identifier above InvalidID and returns it.
// Identifiers taken with RegisterID are skipped.
func (r *Registry[H]) Register(h H) (int32, error) {
	var zero H
	if h == zero {
		return InvalidID, encio.NewError(ErrEmptyHandle, "cannot register the empty handle", 0)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for id := r.next; id <= math.MaxInt32; id++ {
		if _, used := r.byID[int32(id)]; used {
			continue
		}

		r.byID[int32(id)] = h
		r.index(int32(id), h)
		r.next = id + 1
		return int32(id), nil
	}

	r.next = math.MaxInt32 + 1
	return InvalidID, encio.NewError(ErrExhausted, fmt.Sprintf("cannot register %v", h), 0)
}

// ID returns the lowest identifier h is registered under, or InvalidID if it is not registered.
func (r *Registry[H]) ID(h H) int32 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if ids := r.byHandle[h]; len(ids) > 0 {
		return ids[0]
	}
	return InvalidID
}

// Handle returns the handle registered under id, or the zero handle if there is none.
func (r *Registry[H]) Handle(id int32) H {
	h, _ := r.Lookup(id)
	return h
}

// Lookup returns the handle registered under id, and whether there is one.
func (r *Registry[H]) Lookup(id int32) (H, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	h, ok := r.byID[id]
	return h, ok
}

// Len returns the number of registered identifiers.
func (r *Registry[H]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.byID)
}

// Clear removes every registration. Allocation starts again from InvalidID+1.
func (r *Registry[H]) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.byID = make(map[int32]H)
	r.byHandle = make(map[H][]int32)
	r.next = int64(InvalidID) + 1
}

// Entries returns every registration, ordered by identifier.
func (r *Registry[H]) Entries() []Entry[H] {
	r.mutex.RLock()
	entries := make([]Entry[H], 0, len(r.byID))
	for id, h := range r.byID {
		entries = append(entries, Entry[H]{ID: id, Handle: h})
	}
	r.mutex.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (r *Registry[H]) index(id int32, h H) {
	ids := r.byHandle[h]
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	r.byHandle[h] = ids
}

func (r *Registry[H]) unindex(id int32, h H) {
	ids := r.byHandle[h]
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i == len(ids) || ids[i] != id {
		return
	}

	ids = append(ids[:i], ids[i+1:]...)
	if len(ids) == 0 {
		delete(r.byHandle, h)
		return
	}
	r.byHandle[h] = ids
}
