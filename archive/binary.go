package archive

import (
	"fmt"
	"io"
	"math"

	"github.com/stewi1014/arcs/encio"
)

// Binary archive layout:
// scalars are fixed width little-endian, bools take one byte,
// strings are a Uvarint length followed by the bytes, and size tags are a Uvarint.
// Names and Begin/End leave no trace.

// NewWriter returns a binary archive writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Writer is a positional, saving binary archive.
type Writer struct {
	w    io.Writer
	word encio.Word
	len  encio.Uvarint
}

// Loading implements Archive.
func (a *Writer) Loading() bool { return false }

// Bool implements Archive.
func (a *Writer) Bool(_ string, v *bool) error {
	checkPtr(v)
	a.word[0] = 0
	if *v {
		a.word[0] = 1
	}
	return encio.Write(a.word[:1], a.w)
}

// Uint8 implements Archive.
func (a *Writer) Uint8(_ string, v *uint8) error {
	checkPtr(v)
	a.word[0] = *v
	return encio.Write(a.word[:1], a.w)
}

// Int32 implements Archive.
func (a *Writer) Int32(_ string, v *int32) error {
	checkPtr(v)
	return a.word.EncodeUint32(a.w, uint32(*v))
}

// Uint32 implements Archive.
func (a *Writer) Uint32(_ string, v *uint32) error {
	checkPtr(v)
	return a.word.EncodeUint32(a.w, *v)
}

// Int64 implements Archive.
func (a *Writer) Int64(_ string, v *int64) error {
	checkPtr(v)
	return a.word.EncodeUint64(a.w, uint64(*v))
}

// Uint64 implements Archive.
func (a *Writer) Uint64(_ string, v *uint64) error {
	checkPtr(v)
	return a.word.EncodeUint64(a.w, *v)
}

// Float32 implements Archive.
func (a *Writer) Float32(_ string, v *float32) error {
	checkPtr(v)
	return a.word.EncodeFloat32(a.w, *v)
}

// Float64 implements Archive.
func (a *Writer) Float64(_ string, v *float64) error {
	checkPtr(v)
	return a.word.EncodeFloat64(a.w, *v)
}

// String implements Archive.
func (a *Writer) String(_ string, v *string) error {
	checkPtr(v)
	if uint64(len(*v)) > math.MaxUint32 {
		return encio.NewError(encio.ErrBadType, fmt.Sprintf("string of length %v is too long for a binary archive", len(*v)), 0)
	}

	if err := a.len.Encode(a.w, uint32(len(*v))); err != nil || len(*v) == 0 {
		return err
	}

	return encio.Write([]byte(*v), a.w)
}

// SizeTag implements Archive.
func (a *Writer) SizeTag(n *int) error {
	checkPtr(n)
	if *n < 0 || uint64(*n) > math.MaxUint32 {
		return encio.NewError(encio.ErrBadType, fmt.Sprintf("size tag %v can't be written to a binary archive", *n), 0)
	}
	return a.len.Encode(a.w, uint32(*n))
}

// Begin implements Archive. It writes nothing.
func (a *Writer) Begin(string) error { return nil }

// End implements Archive. It writes nothing.
func (a *Writer) End() error { return nil }

// NewReader returns a binary archive reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: truncatedReader{r}}
}

// Reader is a positional, loading binary archive.
// It reads exactly what Writer wrote; no extra data is read.
//
// A binary archive doesn't record where it ends, so running out of data while loading
// is always reported as io.ErrUnexpectedEOF, even between two values.
// Telling a clean end of stream apart is left to whatever frames the archives, like arcs.Decoder.
type Reader struct {
	r    io.Reader
	word encio.Word
	len  encio.Uvarint
}

// Loading implements Archive.
func (a *Reader) Loading() bool { return true }

// Bool implements Archive.
func (a *Reader) Bool(_ string, v *bool) error {
	checkPtr(v)
	if err := encio.Read(a.word[:1], a.r); err != nil {
		return err
	}

	switch a.word[0] {
	case 0:
		*v = false
	case 1:
		*v = true
	default:
		return encio.NewIOError(encio.ErrMalformed, a.r, fmt.Sprintf("invalid bool value %v", a.word[0]), 0)
	}
	return nil
}

// Uint8 implements Archive.
func (a *Reader) Uint8(_ string, v *uint8) error {
	checkPtr(v)
	if err := encio.Read(a.word[:1], a.r); err != nil {
		return err
	}
	*v = a.word[0]
	return nil
}

// Int32 implements Archive.
func (a *Reader) Int32(_ string, v *int32) error {
	checkPtr(v)
	n, err := a.word.DecodeUint32(a.r)
	*v = int32(n)
	return err
}

// Uint32 implements Archive.
func (a *Reader) Uint32(_ string, v *uint32) error {
	checkPtr(v)
	n, err := a.word.DecodeUint32(a.r)
	*v = n
	return err
}

// Int64 implements Archive.
func (a *Reader) Int64(_ string, v *int64) error {
	checkPtr(v)
	n, err := a.word.DecodeUint64(a.r)
	*v = int64(n)
	return err
}

// Uint64 implements Archive.
func (a *Reader) Uint64(_ string, v *uint64) error {
	checkPtr(v)
	n, err := a.word.DecodeUint64(a.r)
	*v = n
	return err
}

// Float32 implements Archive.
func (a *Reader) Float32(_ string, v *float32) error {
	checkPtr(v)
	f, err := a.word.DecodeFloat32(a.r)
	*v = f
	return err
}

// Float64 implements Archive.
func (a *Reader) Float64(_ string, v *float64) error {
	checkPtr(v)
	f, err := a.word.DecodeFloat64(a.r)
	*v = f
	return err
}

// String implements Archive.
func (a *Reader) String(_ string, v *string) error {
	checkPtr(v)

	l, err := a.len.Decode(a.r)
	if err != nil {
		return err
	}

	if uintptr(l) > encio.TooBig {
		return encio.NewIOError(
			encio.ErrMalformed,
			a.r,
			fmt.Sprintf("string with length %v is too big", l),
			0,
		)
	}

	if l == 0 {
		*v = ""
		return nil
	}

	buff := encio.GetBuffer(int(l))[:l]
	defer encio.PutBuffer(buff)

	if err := encio.Read(buff, a.r); err != nil {
		return err
	}

	*v = string(buff)
	return nil
}

// SizeTag implements Archive.
func (a *Reader) SizeTag(n *int) error {
	checkPtr(n)

	l, err := a.len.Decode(a.r)
	if err != nil {
		return err
	}

	if uintptr(l) > encio.TooBig {
		return encio.NewIOError(encio.ErrMalformed, a.r, fmt.Sprintf("size tag %v is too big", l), 0)
	}

	*n = int(l)
	return nil
}

// Begin implements Archive. It reads nothing.
func (a *Reader) Begin(string) error { return nil }

// End implements Archive. It reads nothing.
func (a *Reader) End() error { return nil }

// truncatedReader reports io.EOF as io.ErrUnexpectedEOF.
type truncatedReader struct {
	io.Reader
}

func (r truncatedReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
