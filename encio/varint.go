package encio

import (
	"errors"
	"fmt"
	"io"
)

// maxSingleUint is the first value that doesn't fit in a single byte.
// Header bytes from maxSingleUint+1 to 255 give the count of little-endian bytes that follow, 1 to 4.
const maxSingleUint = 255 - 4

// Uvarint reads and writes uint32s in a variable-length format, used for size tags, string lengths and stream frames.
// Numbers below 251 take a single byte; larger numbers take a header byte followed by 1 to 4 bytes.
// The zero value is ready to use; it is only scratch space.
type Uvarint [5]byte

// Encode writes n to w.
func (buff *Uvarint) Encode(w io.Writer, n uint32) error {
	if n < maxSingleUint {
		buff[0] = uint8(n)
		return Write(buff[:1], w)
	}

	size := 0
	for ; n > 0; n >>= 8 {
		size++
		buff[size] = uint8(n)
	}
	buff[0] = maxSingleUint + uint8(size)
	return Write(buff[:size+1], w)
}

// Decode reads a uint32 from r.
func (buff *Uvarint) Decode(r io.Reader) (uint32, error) {
	if err := Read(buff[:1], r); err != nil {
		return 0, err
	}
	if buff[0] < maxSingleUint {
		return uint32(buff[0]), nil
	}

	size := int(buff[0] - maxSingleUint)
	if size == 0 {
		return 0, NewIOError(ErrMalformed, r, fmt.Sprintf("varint header %v has no bytes", buff[0]), 0)
	}
	if err := Read(buff[1:size+1], r); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, NewIOError(io.ErrUnexpectedEOF, r, "varint ends after its header", 0)
		}
		return 0, err
	}

	var n uint32
	for i := size; i > 0; i-- {
		n = n<<8 | uint32(buff[i])
	}
	return n, nil
}
