package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured slog.Logger with the given level. Logs go
// to w so command results on stdout stay machine readable.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
