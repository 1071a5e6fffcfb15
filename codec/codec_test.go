package codec_test

import (
	"bytes"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/format"
)

// formatCase carries a saved value through one kind of archive, and returns an archive to load it back from.
// rest reports how many saved bytes the load left unread.
type formatCase struct {
	desc    string
	through func(t *testing.T, save func(archive.Archive) error) (ar archive.Archive, rest func() int)
}

func noRest() int { return 0 }

func saveTree(t *testing.T, save func(archive.Archive) error) *archive.Node {
	w := archive.NewTreeWriter()
	td.CmpNoError(t, save(w))
	return w.Root()
}

var formats = []formatCase{
	{
		desc: "binary",
		through: func(t *testing.T, save func(archive.Archive) error) (archive.Archive, func() int) {
			buff := new(bytes.Buffer)
			td.CmpNoError(t, save(archive.NewWriter(buff)))
			return archive.NewReader(buff), buff.Len
		},
	},
	{
		desc: "tree",
		through: func(t *testing.T, save func(archive.Archive) error) (archive.Archive, func() int) {
			return archive.NewTreeReader(saveTree(t, save)), noRest
		},
	},
	{
		desc: "cbor",
		through: func(t *testing.T, save func(archive.Archive) error) (archive.Archive, func() int) {
			data, err := format.MarshalCBOR(saveTree(t, save))
			td.CmpNoError(t, err)
			root, err := format.UnmarshalCBOR(data)
			td.CmpNoError(t, err)
			return archive.NewTreeReader(root), noRest
		},
	},
	{
		desc: "yaml",
		through: func(t *testing.T, save func(archive.Archive) error) (archive.Archive, func() int) {
			data, err := format.MarshalYAML(saveTree(t, save))
			td.CmpNoError(t, err)
			root, err := format.UnmarshalYAML(data)
			td.CmpNoError(t, err)
			return archive.NewTreeReader(root), noRest
		},
	},
}

// forEachFormat saves in with save, loads it back with load in every format, and passes the loaded value to check.
func forEachFormat[T any](t *testing.T, in T, save, load func(archive.Archive, *T) error, check func(t *testing.T, got T)) {
	t.Helper()
	for _, f := range formats {
		t.Run(f.desc, func(t *testing.T) {
			v := in
			ar, rest := f.through(t, func(ar archive.Archive) error { return save(ar, &v) })

			var got T
			td.CmpNoError(t, load(ar, &got))
			td.Cmp(t, rest(), 0, "trailing data")
			check(t, got)
		})
	}
}
