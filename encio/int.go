package encio

import (
	"io"
	"math"
)

// Word is a scratch buffer large enough for any fixed-width scalar.
// Its methods read and write little-endian values of the given width.
type Word [8]byte

// EncodeUint32 writes n to w in 4 bytes.
func (b *Word) EncodeUint32(w io.Writer, n uint32) error {
	EncodeUint32(b[:4], n)
	return Write(b[:4], w)
}

// DecodeUint32 reads a 4 byte uint32 from r.
func (b *Word) DecodeUint32(r io.Reader) (uint32, error) {
	if err := Read(b[:4], r); err != nil {
		return 0, err
	}
	return DecodeUint32(b[:4]), nil
}

// EncodeUint64 writes n to w in 8 bytes.
func (b *Word) EncodeUint64(w io.Writer, n uint64) error {
	EncodeUint64(b[:8], n)
	return Write(b[:8], w)
}

// DecodeUint64 reads an 8 byte uint64 from r.
func (b *Word) DecodeUint64(r io.Reader) (uint64, error) {
	if err := Read(b[:8], r); err != nil {
		return 0, err
	}
	return DecodeUint64(b[:8]), nil
}

// EncodeFloat32 writes the IEEE 754 bits of f to w.
func (b *Word) EncodeFloat32(w io.Writer, f float32) error {
	return b.EncodeUint32(w, math.Float32bits(f))
}

// DecodeFloat32 reads a float32 from r.
func (b *Word) DecodeFloat32(r io.Reader) (float32, error) {
	bits, err := b.DecodeUint32(r)
	return math.Float32frombits(bits), err
}

// EncodeFloat64 writes the IEEE 754 bits of f to w.
func (b *Word) EncodeFloat64(w io.Writer, f float64) error {
	return b.EncodeUint64(w, math.Float64bits(f))
}

// DecodeFloat64 reads a float64 from r.
func (b *Word) DecodeFloat64(r io.Reader) (float64, error) {
	bits, err := b.DecodeUint64(r)
	return math.Float64frombits(bits), err
}

// EncodeUint32 writes a uint32 to buff.
func EncodeUint32(buff []byte, n uint32) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
}

// DecodeUint32 reads a uint32 from buff.
func DecodeUint32(buff []byte) uint32 {
	n := uint32(buff[0])
	n |= uint32(buff[1]) << 8
	n |= uint32(buff[2]) << 16
	n |= uint32(buff[3]) << 24
	return n
}

// EncodeUint64 writes a uint64 to buff.
func EncodeUint64(buff []byte, n uint64) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
	buff[4] = uint8(n >> 32)
	buff[5] = uint8(n >> 40)
	buff[6] = uint8(n >> 48)
	buff[7] = uint8(n >> 56)
}

// DecodeUint64 reads a uint64 from buff.
func DecodeUint64(buff []byte) uint64 {
	n := uint64(buff[0])
	n |= uint64(buff[1]) << 8
	n |= uint64(buff[2]) << 16
	n |= uint64(buff[3]) << 24
	n |= uint64(buff[4]) << 32
	n |= uint64(buff[5]) << 40
	n |= uint64(buff[6]) << 48
	n |= uint64(buff[7]) << 56
	return n
}
