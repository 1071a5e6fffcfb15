package arcs

import (
	"log/slog"

	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/envelope"
)

// Config defines configuration for Marshal, Unmarshal, Encoders and Decoders.
// A nil *Config is the same as a zero Config.
type Config struct {
	// Format is the document format. Defaults to Binary.
	Format Format

	// Compression is the compression used when sealing binary documents. It is ignored by other formats,
	// and when loading, where the envelope says how its body is compressed.
	Compression envelope.CompressionTag

	// Logger receives debug logs. If nil, encio.Warnings is used.
	Logger *slog.Logger
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Logger == nil {
		config.Logger = encio.Warnings
	}

	return config
}
