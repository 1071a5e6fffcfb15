// Package encio provides io methods relevant to archives, as well as the error types shared by every arcs package.
package encio

import (
	"errors"
	"fmt"
	"io"
)

// TooBig is a byte count used for sanity checking lengths decoded from archives and streams before allocating for them.
// ErrMalformed is returned if a length exceeds it.
//
// By default it is 32MB on 32bit machines, and 128MB on 64bit machines.
var TooBig = uintptr(1 << (25 + ((^uint(0) >> 32) & 2)))

// Read fills buff from r.
// If r ends before anything is read, the returned error wraps io.EOF; if it ends part way, it wraps io.ErrUnexpectedEOF.
// Errors are ignored once the buffer is full.
func Read(buff []byte, r io.Reader) error {
	var (
		end int
		err error
	)
	for end < len(buff) {
		var n int
		n, err = r.Read(buff[end:])
		end += n
		if err != nil || n == 0 {
			break
		}
	}

	switch {
	case end == len(buff):
		return nil
	case end > len(buff):
		return NewIOError(errors.New("bad io.Reader implementation"), r, fmt.Sprintf("read %v bytes into a %v byte buffer", end, len(buff)), 1)
	case errors.Is(err, io.EOF) && end == 0:
		return NewIOError(io.EOF, r, "", 1)
	case errors.Is(err, io.EOF):
		return NewIOError(io.ErrUnexpectedEOF, r, fmt.Sprintf("need %v bytes, have %v", len(buff), end), 1)
	case err != nil:
		return NewIOError(err, r, "", 1)
	default:
		return NewIOError(io.ErrNoProgress, r, fmt.Sprintf("need %v bytes, have %v", len(buff), end), 1)
	}
}

// Write writes all of buff to w.
// Short writes without an error are retried, with a warning, until w stops making progress.
func Write(buff []byte, w io.Writer) error {
	var (
		end int
		err error
	)
	for end < len(buff) {
		var n int
		n, err = w.Write(buff[end:])
		end += n
		if err != nil || n == 0 || end >= len(buff) {
			break
		}

		Warnings.Warn("short write without error, retrying",
			"writer", fmt.Sprintf("%T", w),
			"written", end,
			"remaining", len(buff)-end,
		)
	}

	switch {
	case end == len(buff):
		return err
	case end > len(buff):
		return NewIOError(errors.New("bad io.Writer implementation"), w, fmt.Sprintf("wrote %v bytes from a %v byte buffer", end, len(buff)), 1)
	case err == nil:
		return NewIOError(io.ErrShortWrite, w, fmt.Sprintf("wrote %v of %v bytes", end, len(buff)), 1)
	default:
		return NewIOError(err, w, fmt.Sprintf("wrote %v of %v bytes", end, len(buff)), 1)
	}
}
