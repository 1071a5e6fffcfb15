package encio

import (
	"errors"
	"fmt"
	"runtime"
)

// Errors come in two wrappers.
// An IOError means the stream or the data in it is bad, and the archive should not be used any further.
// An Error means a codec, archive or configuration was used in a way it can't support; the data may be fine.
//
// Both unwrap to one of the sentinels below, or to the error from the underlying reader or writer:
//
//	if errors.Is(err, encio.ErrMalformed) {
//		// damaged or foreign document
//	}
//	var ioErr encio.IOError
//	if errors.As(err, &ioErr) {
//		// stop reading from this stream
//	}
var (
	// ErrMalformed is returned when read data is impossible to decode.
	ErrMalformed = errors.New("malformed")

	// ErrBadType is returned when a value read from a self-describing archive is not of the kind the codec asked for,
	// or when a value can't be represented by the archive.
	ErrBadType = errors.New("bad type")

	// ErrNilPointer is returned if a pointer that should not be nil is nil.
	ErrNilPointer = errors.New("nil pointer")

	// ErrBadConfig is returned when a configuration can't be used, i.e. an unknown format or compression.
	ErrBadConfig = errors.New("bad config")
)

// IOError is returned when reading or writing fails, or when read data is malformed.
type IOError struct {
	Err     error
	Message string
}

// NewIOError returns an IOError wrapping err.
// rw is the reader, writer or archive involved and may be nil; its type prefixes the message.
// An empty message is replaced with the name of the function depth calls above NewIOError's caller.
func NewIOError(err error, rw any, message string, depth int) error {
	if err == nil {
		return NewError(errors.New("nil error"), "creating IOError", depth+1)
	}
	if message == "" {
		message = "in " + GetCaller(depth+1)
	}
	if rw != nil {
		message = fmt.Sprintf("%T: %v", rw, message)
	}
	return IOError{Err: err, Message: message}
}

func (e IOError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e IOError) Unwrap() error { return e.Err }

// Error is returned when an archive, codec or configuration is misused.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// NewError returns an Error wrapping err, recording the function depth calls above NewError's caller.
func NewError(err error, message string, depth int) error {
	return Error{Err: err, Message: message, Caller: GetCaller(depth + 1)}
}

func (e Error) Error() string {
	s := e.Err.Error()
	if e.Caller != "" {
		s = e.Caller + ": " + s
	}
	if e.Message != "" {
		s += " (" + e.Message + ")"
	}
	return s
}

func (e Error) Unwrap() error { return e.Err }

// GetCaller returns the name of the calling function, skipping skip functions.
// 0 is the function calling GetCaller.
func GetCaller(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown function"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown function"
}
