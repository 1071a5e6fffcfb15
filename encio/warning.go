package encio

import (
	"log/slog"
	"os"
)

// Warnings is where warnings are sent to.
// In many cases arcs will continue to operate when something looks wrong,
// i.e. a short write with no error, or a class reference that was never registered being saved as the invalid id.
// I don't want to silently put up with things that seem worrying.
//
// Replace it to route warnings elsewhere, or set it to a logger with a discarding handler to silence them.
var Warnings = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
