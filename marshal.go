package arcs

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/codec"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/envelope"
	"github.com/stewi1014/arcs/format"
)

// Marshal serializes v with c and returns the document.
// In self-describing formats, v is stored unnamed at the top of the document.
func Marshal[T any](c codec.Codec[T], v *T, config *Config) ([]byte, error) {
	config = config.copyAndFill()

	data, err := marshal(codec.Bind(c, "", v), config)
	if err != nil {
		return nil, err
	}

	config.Logger.Debug("marshalled document", slog.String("format", config.Format.String()), slog.Int("bytes", len(data)))
	return data, nil
}

func marshal(save codec.Field, config *Config) ([]byte, error) {
	switch config.Format {
	case Binary:
		buff := bytes.NewBuffer(encio.GetBuffer(512))
		defer func() { encio.PutBuffer(buff.Bytes()) }()

		if err := save(archive.NewWriter(buff)); err != nil {
			return nil, err
		}
		return envelope.Seal(buff.Bytes(), config.Compression)

	case CBOR, YAML:
		w := archive.NewTreeWriter()
		if err := save(w); err != nil {
			return nil, err
		}
		return encodeTree(w.Root(), config.Format)

	default:
		return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unknown format %v", config.Format), 1)
	}
}

// Unmarshal loads a document made by Marshal into v, using the same codec it was saved with.
// The format must match the one used to marshal; binary documents must also be loaded in full.
func Unmarshal[T any](data []byte, c codec.Codec[T], v *T, config *Config) error {
	config = config.copyAndFill()
	return unmarshal(data, codec.Bind(c, "", v), config)
}

func unmarshal(data []byte, load codec.Field, config *Config) error {
	switch config.Format {
	case Binary:
		payload, err := envelope.Open(data)
		if err != nil {
			return err
		}

		r := bytes.NewReader(payload)
		if err := load(archive.NewReader(r)); err != nil {
			return err
		}
		if r.Len() != 0 {
			return encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("%v bytes left over after loading", r.Len()), 0)
		}
		return nil

	case CBOR, YAML:
		root, err := decodeTree(data, config.Format)
		if err != nil {
			return err
		}
		return load(archive.NewTreeReader(root))

	default:
		return encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unknown format %v", config.Format), 1)
	}
}

// Convert re-encodes a self-describing document in another self-describing format.
// Binary documents can't be converted; they don't say what they hold.
func Convert(data []byte, from, to Format) ([]byte, error) {
	if !from.SelfDescribing() || !to.SelfDescribing() {
		return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("cannot convert %v to %v; only self-describing formats can be converted", from, to), 0)
	}

	root, err := decodeTree(data, from)
	if err != nil {
		return nil, err
	}
	return encodeTree(root, to)
}

func encodeTree(root *archive.Node, f Format) ([]byte, error) {
	if f == YAML {
		return format.MarshalYAML(root)
	}
	return format.MarshalCBOR(root)
}

func decodeTree(data []byte, f Format) (*archive.Node, error) {
	if f == YAML {
		return format.UnmarshalYAML(data)
	}
	return format.UnmarshalCBOR(data)
}
