package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger for diagnostics. Warnings are always shown;
// verbose adds debug records such as file paths and row counts.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard is used where no logger was configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
