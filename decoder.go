package arcs

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
)

// NewDecoder returns a new Decoder reading from r.
// config must use the same Format as the Encoder that wrote the stream.
func NewDecoder(r io.Reader, config *Config) *Decoder {
	return &Decoder{
		r:      r,
		config: config.copyAndFill(),
	}
}

// Decoder reads a stream of documents written by an Encoder.
//
// It is safe for concurrent use; each call to Decode reads one whole document.
type Decoder struct {
	r      io.Reader
	mutex  sync.Mutex
	config *Config
	size   encio.Uvarint
}

// Decode reads the next document, and loads it with load.
// It returns io.EOF if the stream ended cleanly before the document.
func (d *Decoder) Decode(load func(archive.Archive) error) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	n, err := d.size.Decode(d.r)
	if err != nil {
		return err
	}
	if uintptr(n) > encio.TooBig {
		return encio.NewIOError(encio.ErrMalformed, d.r, fmt.Sprintf("document length %v is too big", n), 0)
	}

	buff := encio.GetBuffer(int(n))[:n]
	defer encio.PutBuffer(buff)

	if err := encio.Read(buff, d.r); err != nil {
		if errors.Is(err, io.EOF) {
			return encio.NewIOError(io.ErrUnexpectedEOF, d.r, "stream ends after a document length", 0)
		}
		return err
	}

	return unmarshal(buff, load, d.config)
}
