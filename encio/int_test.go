package encio_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs/encio"
)

func TestWordUint32(t *testing.T) {
	testCases := []uint32{
		0, 1, 2, 3, 4,
		246, 247, 248, 249, 250, 251, 252, 253, 254, 255, 256, 257,
		1 << 8, 1 << 16, 1 << 24, 1<<32 - 1,
	}

	var word encio.Word

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			buff := new(bytes.Buffer)

			td.CmpNoError(t, word.EncodeUint32(buff, tC))
			td.Cmp(t, buff.Len(), 4)

			n, err := word.DecodeUint32(buff)
			td.CmpNoError(t, err)
			td.Cmp(t, n, tC)
			td.Cmp(t, buff.Len(), 0, "data remaining in buffer")
		})
	}
}

func TestWordUint64(t *testing.T) {
	testCases := []uint64{
		0, 1, 255, 256, 1 << 32, 1<<63 + 12345, math.MaxUint64,
	}

	var word encio.Word

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			buff := new(bytes.Buffer)

			td.CmpNoError(t, word.EncodeUint64(buff, tC))

			n, err := word.DecodeUint64(buff)
			td.CmpNoError(t, err)
			td.Cmp(t, n, tC)
			td.Cmp(t, buff.Len(), 0, "data remaining in buffer")
		})
	}
}

func TestWordFloat(t *testing.T) {
	testCases := []float64{
		0, 1, -1, 0.5, math.Pi, math.MaxFloat32, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1),
	}

	var word encio.Word

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			buff := new(bytes.Buffer)

			td.CmpNoError(t, word.EncodeFloat64(buff, tC))
			td.CmpNoError(t, word.EncodeFloat32(buff, float32(tC)))

			f64, err := word.DecodeFloat64(buff)
			td.CmpNoError(t, err)
			td.Cmp(t, f64, tC)

			f32, err := word.DecodeFloat32(buff)
			td.CmpNoError(t, err)
			td.Cmp(t, f32, float32(tC))

			td.Cmp(t, buff.Len(), 0, "data remaining in buffer")
		})
	}
}

func TestWordShortRead(t *testing.T) {
	var word encio.Word

	_, err := word.DecodeUint64(bytes.NewReader([]byte{1, 2, 3}))
	td.CmpError(t, err)

	var ioErr encio.IOError
	td.CmpTrue(t, errors.As(err, &ioErr))
	td.CmpTrue(t, errors.Is(err, io.ErrUnexpectedEOF))
}
