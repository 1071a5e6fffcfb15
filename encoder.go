package arcs

import (
	"io"
	"math"
	"sync"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
)

// NewEncoder returns a new Encoder writing to w.
func NewEncoder(w io.Writer, config *Config) *Encoder {
	return &Encoder{
		w:      w,
		config: config.copyAndFill(),
	}
}

// Encoder writes a stream of documents.
// Each document is written as its length followed by the document itself, as Marshal would make it.
//
// It is safe for concurrent use; documents are written whole, one at a time.
type Encoder struct {
	w      io.Writer
	mutex  sync.Mutex
	config *Config
	size   encio.Uvarint
}

// Encode writes the document made by save.
// save is usually made with codec.Bind, e.g. enc.Encode(codec.Bind(codec.Vector, "", &v)).
func (e *Encoder) Encode(save func(archive.Archive) error) error {
	data, err := marshal(save, e.config)
	if err != nil {
		return err
	}
	if uint64(len(data)) > math.MaxUint32 {
		return encio.NewError(encio.ErrBadType, "document is too large for a stream", 0)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if err := e.size.Encode(e.w, uint32(len(data))); err != nil {
		return err
	}
	return encio.Write(data, e.w)
}
