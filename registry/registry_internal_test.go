package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestRegisterExhausted(t *testing.T) {
	reg := New[string]()
	td.CmpNoError(t, reg.RegisterID(math.MaxInt32, "taken"))

	// Pretend everything below MaxInt32-1 is in use.
	reg.next = math.MaxInt32 - 1

	id, err := reg.Register("last")
	td.CmpNoError(t, err)
	td.Cmp(t, id, int32(math.MaxInt32-1))

	id, err = reg.Register("one too many")
	td.CmpTrue(t, errors.Is(err, ErrExhausted), "got %v", err)
	td.Cmp(t, id, InvalidID)
	td.Cmp(t, reg.next, int64(math.MaxInt32)+1)
	td.Cmp(t, reg.ID("one too many"), InvalidID)

	_, err = reg.Register("still too many")
	td.CmpTrue(t, errors.Is(err, ErrExhausted), "got %v", err)
	td.Cmp(t, reg.Len(), 2)

	reg.Clear()
	id, err = reg.Register("fresh")
	td.CmpNoError(t, err)
	td.Cmp(t, id, InvalidID+1)
}
