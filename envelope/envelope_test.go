package envelope_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/envelope"
)

func payloads() map[string][]byte {
	rng := rand.New(rand.NewSource(0))
	random := make([]byte, 4096)
	rng.Read(random)

	return map[string][]byte{
		"empty":      {},
		"short":      []byte("hi"),
		"repetitive": bytes.Repeat([]byte("vector x y z "), 500),
		"random":     random,
	}
}

func TestSealOpen(t *testing.T) {
	tags := []envelope.CompressionTag{envelope.CompressionNone, envelope.CompressionLZ4, envelope.CompressionZstd}

	for _, tag := range tags {
		for name, payload := range payloads() {
			t.Run(tag.String()+"/"+name, func(t *testing.T) {
				sealed, err := envelope.Seal(payload, tag)
				td.CmpNoError(t, err)

				opened, err := envelope.Open(sealed)
				td.CmpNoError(t, err)
				td.Cmp(t, len(opened), len(payload))
				td.CmpTrue(t, bytes.Equal(opened, payload))
			})
		}
	}
}

func TestSealCompresses(t *testing.T) {
	payload := payloads()["repetitive"]

	for _, tag := range []envelope.CompressionTag{envelope.CompressionLZ4, envelope.CompressionZstd} {
		sealed, err := envelope.Seal(payload, tag)
		td.CmpNoError(t, err)
		td.CmpLt(t, len(sealed), len(payload), tag.String())
	}
}

func TestOpenDetectsDamage(t *testing.T) {
	payload := payloads()["repetitive"]

	for _, tag := range []envelope.CompressionTag{envelope.CompressionNone, envelope.CompressionLZ4, envelope.CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			sealed, err := envelope.Seal(payload, tag)
			td.CmpNoError(t, err)

			t.Run("flipped byte", func(t *testing.T) {
				damaged := append([]byte(nil), sealed...)
				damaged[len(damaged)-1] ^= 0x40
				_, err := envelope.Open(damaged)
				td.CmpTrue(t, errors.Is(err, encio.ErrMalformed))
			})

			t.Run("truncated", func(t *testing.T) {
				_, err := envelope.Open(sealed[:len(sealed)-3])
				td.CmpTrue(t, errors.Is(err, encio.ErrMalformed))
			})
		})
	}

	t.Run("bad magic", func(t *testing.T) {
		sealed, err := envelope.Seal(payload, envelope.CompressionNone)
		td.CmpNoError(t, err)
		sealed[0] = 'X'
		_, err = envelope.Open(sealed)
		td.CmpTrue(t, errors.Is(err, encio.ErrMalformed))
	})

	t.Run("short header", func(t *testing.T) {
		_, err := envelope.Open([]byte("ARC1"))
		td.CmpTrue(t, errors.Is(err, encio.ErrMalformed))
	})
}

func TestParseCompressionTag(t *testing.T) {
	for _, tag := range []envelope.CompressionTag{envelope.CompressionNone, envelope.CompressionLZ4, envelope.CompressionZstd} {
		parsed, err := envelope.ParseCompressionTag(tag.String())
		td.CmpNoError(t, err)
		td.Cmp(t, parsed, tag)
	}

	_, err := envelope.ParseCompressionTag("brotli")
	td.CmpTrue(t, errors.Is(err, encio.ErrBadConfig))
}
