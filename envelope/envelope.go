// Package envelope seals binary archive payloads for storage.
//
// A sealed payload is
//
//	"ARC1" | compression tag (1 byte) | raw length (uint32) | BLAKE3 digest of the raw payload (32 bytes) | body
//
// The binary archive is positional and carries no structure of its own, so a truncated or altered payload
// would otherwise decode into garbage rather than fail. The digest makes that fail loudly with encio.ErrMalformed.
package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/stewi1014/arcs/encio"
)

// CompressionTag identifies the compression algorithm of a sealed body.
// These values are stored in the envelope; changing them breaks existing payloads.
type CompressionTag uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 uses LZ4 block compression. Fast, modest ratio.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd uses zstd at the default level. Better ratio for large, repetitive payloads.
	CompressionZstd CompressionTag = 2
)

// String returns the name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a compression tag from its name.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unknown compression %q", name), 0)
	}
}

const (
	magic      = "ARC1"
	digestSize = 32
	headerSize = len(magic) + 1 + 4 + digestSize
)

// errIncompressible signals that compression would not shrink the payload; it is stored uncompressed instead.
var errIncompressible = errors.New("incompressible")

// Seal compresses payload with tag and wraps it in an envelope.
// If compression doesn't make the payload smaller it is stored with CompressionNone.
func Seal(payload []byte, tag CompressionTag) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, encio.NewError(encio.ErrBadType, fmt.Sprintf("payload of %v bytes is too large to seal", len(payload)), 0)
	}

	body, err := compress(payload, tag)
	switch {
	case errors.Is(err, errIncompressible):
		body, tag = payload, CompressionNone
	case err != nil:
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, magic)
	out[len(magic)] = byte(tag)
	encio.EncodeUint32(out[len(magic)+1:], uint32(len(payload)))
	digest := blake3.Sum256(payload)
	copy(out[len(magic)+5:], digest[:])

	return append(out, body...), nil
}

// Open checks and unwraps a sealed payload, returning the raw payload.
func Open(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("envelope of %v bytes is shorter than its header", len(data)), 0)
	}
	if string(data[:len(magic)]) != magic {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("bad envelope magic %q", data[:len(magic)]), 0)
	}

	tag := CompressionTag(data[len(magic)])
	size := encio.DecodeUint32(data[len(magic)+1:])
	if uintptr(size) > encio.TooBig {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("payload size %v is too big", size), 0)
	}
	digest := data[len(magic)+5 : headerSize]

	payload, err := decompress(data[headerSize:], tag, int(size))
	if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:], digest) {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, "payload digest mismatch", 0)
	}

	return payload, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use, so one of each is shared.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("envelope: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("envelope: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(payload []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return payload, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, dst, nil)
		if err != nil {
			return nil, encio.NewError(err, "lz4 compress", 0)
		}
		// CompressBlock returns 0 when the data is incompressible.
		if n == 0 || n >= len(payload) {
			return nil, errIncompressible
		}
		return dst[:n], nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed) >= len(payload) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unsupported compression %v", tag), 0)
	}
}

func decompress(body []byte, tag CompressionTag, size int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(body) != size {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("body is %v bytes, header says %v", len(body), size), 0)
		}
		return body, nil

	case CompressionLZ4:
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, "lz4: "+err.Error(), 0)
		}
		if n != size {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("lz4 produced %v bytes, header says %v", n, size), 0)
		}
		return dst, nil

	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, "zstd: "+err.Error(), 0)
		}
		if len(out) != size {
			return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("zstd produced %v bytes, header says %v", len(out), size), 0)
		}
		return out, nil

	default:
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("unknown compression tag %v", uint8(tag)), 0)
	}
}
