package registry_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs/registry"
)

type class struct {
	name string
}

func TestScenario(t *testing.T) {
	h1, h2 := &class{"H1"}, &class{"H2"}
	reg := registry.New[*class]()

	i1, err := reg.Register(h1)
	td.CmpNoError(t, err)
	td.CmpNoError(t, reg.RegisterID(100, h2))

	td.Cmp(t, reg.ID(h1), i1)
	td.Cmp(t, reg.ID(h2), int32(100))
	td.Cmp(t, reg.Handle(100), h2)
	td.Cmp(t, reg.Handle(-999999), (*class)(nil))
	td.Cmp(t, reg.Len(), 2)
}

func TestRegisterAllocation(t *testing.T) {
	reg := registry.New[string]()

	// Identifiers a caller picked must not be handed out again.
	td.CmpNoError(t, reg.RegisterID(registry.InvalidID+2, "taken"))
	td.CmpNoError(t, reg.RegisterID(registry.InvalidID+3, "taken too"))

	seen := make(map[int32]bool)
	for i := 0; i < 10; i++ {
		id, err := reg.Register(fmt.Sprintf("class%v", i))
		td.CmpNoError(t, err)
		td.CmpGt(t, id, registry.InvalidID)
		td.CmpFalse(t, seen[id], "id %v allocated twice", id)
		td.Cmp(t, id, td.None(registry.InvalidID+2, registry.InvalidID+3))
		seen[id] = true
	}

	td.Cmp(t, reg.Handle(registry.InvalidID+1), "class0")
	td.Cmp(t, reg.Handle(registry.InvalidID+4), "class1")
	td.Cmp(t, reg.Len(), 12)

	reg.Clear()
	td.Cmp(t, reg.Len(), 0)
	td.Cmp(t, reg.ID("class0"), registry.InvalidID)

	id, err := reg.Register("again")
	td.CmpNoError(t, err)
	td.Cmp(t, id, registry.InvalidID+1)
}

func TestRegisterSkipsTaken(t *testing.T) {
	reg := registry.New[string]()
	for id := registry.InvalidID + 1; id < registry.InvalidID+1000; id++ {
		td.CmpNoError(t, reg.RegisterID(id, "filler"))
	}
	td.CmpNoError(t, reg.RegisterID(registry.InvalidID+1001, "gap"))

	id, err := reg.Register("next")
	td.CmpNoError(t, err)
	td.Cmp(t, id, registry.InvalidID+1000)

	id, err = reg.Register("after")
	td.CmpNoError(t, err)
	td.Cmp(t, id, registry.InvalidID+1002)
}

func TestUnregistered(t *testing.T) {
	reg := registry.New[string]()
	td.Cmp(t, reg.ID("nobody"), registry.InvalidID)
	td.Cmp(t, reg.Handle(0), "")

	h, ok := reg.Lookup(0)
	td.CmpFalse(t, ok)
	td.Cmp(t, h, "")
}

func TestRegisterIDErrors(t *testing.T) {
	reg := registry.New[string]()

	err := reg.RegisterID(registry.InvalidID, "x")
	td.CmpTrue(t, errors.Is(err, registry.ErrReservedID))

	err = reg.RegisterID(5, "")
	td.CmpTrue(t, errors.Is(err, registry.ErrEmptyHandle))

	_, err = reg.Register("")
	td.CmpTrue(t, errors.Is(err, registry.ErrEmptyHandle))

	td.Cmp(t, reg.Len(), 0)
}

func TestOverwrite(t *testing.T) {
	reg := registry.New[string]()
	td.CmpNoError(t, reg.RegisterID(7, "first"))
	td.CmpNoError(t, reg.RegisterID(7, "second"))

	td.Cmp(t, reg.Handle(7), "second")
	td.Cmp(t, reg.ID("first"), registry.InvalidID)
	td.Cmp(t, reg.ID("second"), int32(7))
	td.Cmp(t, reg.Len(), 1)
}

func TestDuplicateHandle(t *testing.T) {
	reg := registry.New[string]()
	td.CmpNoError(t, reg.RegisterID(50, "dup"))
	td.CmpNoError(t, reg.RegisterID(-3, "dup"))
	td.CmpNoError(t, reg.RegisterID(12, "dup"))

	// The lowest identifier wins, regardless of registration order.
	td.Cmp(t, reg.ID("dup"), int32(-3))

	td.CmpNoError(t, reg.RegisterID(-3, "other"))
	td.Cmp(t, reg.ID("dup"), int32(12))
	td.Cmp(t, reg.ID("other"), int32(-3))

	for _, e := range reg.Entries() {
		td.Cmp(t, reg.Handle(e.ID), e.Handle)
		if id := reg.ID(e.Handle); id != registry.InvalidID {
			td.Cmp(t, reg.Handle(id), e.Handle)
		}
	}
}

func TestEntries(t *testing.T) {
	reg := registry.New[string]()
	td.CmpNoError(t, reg.RegisterID(9, "c"))
	td.CmpNoError(t, reg.RegisterID(-1, "a"))
	td.CmpNoError(t, reg.RegisterID(3, "b"))

	td.Cmp(t, reg.Entries(), []registry.Entry[string]{
		{ID: -1, Handle: "a"},
		{ID: 3, Handle: "b"},
		{ID: 9, Handle: "c"},
	})
}

func TestConcurrentUse(t *testing.T) {
	reg := registry.New[int]()

	var wg sync.WaitGroup
	ids := make([]int32, 64)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := reg.Register(i + 1)
			if err == nil {
				ids[i] = id
			}
			reg.ID(i + 1)
			reg.Handle(id)
		}(i)
	}
	wg.Wait()

	td.Cmp(t, reg.Len(), len(ids))
	for i, id := range ids {
		td.Cmp(t, reg.Handle(id), i+1)
	}
}
