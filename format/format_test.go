package format_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/format"
)

type sample struct {
	Flag   bool
	Small  uint8
	Neg    int32
	Big    uint64
	Min    int64
	Ratio  float32
	Pi     float64
	Hex    string
	When   string
	Names  []string
	Nested [2]int32
}

func (s *sample) serialize(ar archive.Archive) error {
	if err := ar.Bool("Flag", &s.Flag); err != nil {
		return err
	}
	if err := ar.Uint8("Small", &s.Small); err != nil {
		return err
	}
	if err := ar.Int32("Neg", &s.Neg); err != nil {
		return err
	}
	if err := ar.Uint64("Big", &s.Big); err != nil {
		return err
	}
	if err := ar.Int64("", &s.Min); err != nil {
		return err
	}
	if err := ar.Float32("Ratio", &s.Ratio); err != nil {
		return err
	}
	if err := ar.Float64("Pi", &s.Pi); err != nil {
		return err
	}
	if err := ar.String("Hex", &s.Hex); err != nil {
		return err
	}
	if err := ar.String("When", &s.When); err != nil {
		return err
	}

	if err := ar.Begin("Names"); err != nil {
		return err
	}
	n := len(s.Names)
	if err := ar.SizeTag(&n); err != nil {
		return err
	}
	if ar.Loading() {
		s.Names = make([]string, n)
	}
	for i := range s.Names {
		if err := ar.String("", &s.Names[i]); err != nil {
			return err
		}
	}
	if err := ar.End(); err != nil {
		return err
	}

	if err := ar.Begin("Nested"); err != nil {
		return err
	}
	if err := ar.Int32("a", &s.Nested[0]); err != nil {
		return err
	}
	if err := ar.Int32("b", &s.Nested[1]); err != nil {
		return err
	}
	return ar.End()
}

var want = sample{
	Flag:   true,
	Small:  7,
	Neg:    -40,
	Big:    math.MaxUint64,
	Min:    math.MinInt64,
	Ratio:  0.1,
	Pi:     math.Pi,
	Hex:    "0x10",
	When:   "2024-02-29T12:30:00.125Z",
	Names:  []string{"true", "", "null", "plain"},
	Nested: [2]int32{1, -1},
}

func saveSample(t *testing.T) *archive.Node {
	w := archive.NewTreeWriter()
	s := want
	td.CmpNoError(t, s.serialize(w))
	return w.Root()
}

func loadSample(t *testing.T, root *archive.Node) sample {
	var s sample
	td.CmpNoError(t, s.serialize(archive.NewTreeReader(root)))
	return s
}

func TestCBOR(t *testing.T) {
	data, err := format.MarshalCBOR(saveSample(t))
	td.CmpNoError(t, err)

	again, err := format.MarshalCBOR(saveSample(t))
	td.CmpNoError(t, err)
	td.Cmp(t, again, data, "deterministic encoding")

	root, err := format.UnmarshalCBOR(data)
	td.CmpNoError(t, err)
	td.Cmp(t, loadSample(t, root), want)

	root, err = format.DecodeCBOR(bytes.NewReader(data))
	td.CmpNoError(t, err)
	td.Cmp(t, loadSample(t, root), want)

	diag, err := format.DiagnoseCBOR(data)
	td.CmpNoError(t, err)
	td.Cmp(t, diag, td.Contains(`"Names": ["true", "", "null", "plain"]`))
}

func TestYAML(t *testing.T) {
	data, err := format.MarshalYAML(saveSample(t))
	td.CmpNoError(t, err)

	text := string(data)
	// Saved order is kept.
	td.CmpTrue(t, strings.Index(text, "Flag:") < strings.Index(text, "Nested:"))
	// Strings that would read back as something else are quoted.
	td.Cmp(t, text, td.Contains(`Hex: "0x10"`))

	root, err := format.UnmarshalYAML(data)
	td.CmpNoError(t, err)
	td.Cmp(t, loadSample(t, root), want)
}

func TestConvert(t *testing.T) {
	cborData, err := format.MarshalCBOR(saveSample(t))
	td.CmpNoError(t, err)

	fromCBOR, err := format.UnmarshalCBOR(cborData)
	td.CmpNoError(t, err)

	yamlData, err := format.MarshalYAML(fromCBOR)
	td.CmpNoError(t, err)

	fromYAML, err := format.UnmarshalYAML(yamlData)
	td.CmpNoError(t, err)
	td.Cmp(t, loadSample(t, fromYAML), want)

	back, err := format.MarshalCBOR(fromYAML)
	td.CmpNoError(t, err)

	root, err := format.UnmarshalCBOR(back)
	td.CmpNoError(t, err)
	td.Cmp(t, loadSample(t, root), want)
}

func TestBadDocuments(t *testing.T) {
	testCases := []struct {
		desc string
		dec  func() (*archive.Node, error)
	}{
		{
			desc: "cbor garbage",
			dec:  func() (*archive.Node, error) { return format.UnmarshalCBOR([]byte{0xff, 0x00}) },
		},
		{
			desc: "cbor array root",
			dec:  func() (*archive.Node, error) { return format.UnmarshalCBOR([]byte{0x80}) },
		},
		{
			desc: "yaml scalar root",
			dec:  func() (*archive.Node, error) { return format.UnmarshalYAML([]byte("42\n")) },
		},
		{
			desc: "yaml syntax",
			dec:  func() (*archive.Node, error) { return format.UnmarshalYAML([]byte("a: [1, 2\n")) },
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := tC.dec()
			td.CmpTrue(t, errors.Is(err, encio.ErrMalformed), "got %v", err)
		})
	}
}
