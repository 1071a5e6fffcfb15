package codec

import (
	"log/slog"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/registry"
)

// ClassOf returns a Codec for class handles, storing them as their identifier in reg.
//
// Saving a handle that isn't registered writes registry.InvalidID, and loading an identifier that isn't registered
// gives the zero handle. Neither is an error, but the first is logged to encio.Warnings, since the class is lost.
func ClassOf[H comparable](reg *registry.Registry[H]) Codec[H] {
	return func(ar archive.Archive, name string, h *H) error {
		if ar.Loading() {
			var id int32
			if err := ar.Int32(name, &id); err != nil {
				return err
			}
			*h = reg.Handle(id)
			return nil
		}

		id := reg.ID(*h)
		if id == registry.InvalidID {
			encio.Warnings.Warn("saving unregistered class", slog.String("name", name), slog.Any("class", *h))
		}
		return ar.Int32(name, &id)
	}
}
