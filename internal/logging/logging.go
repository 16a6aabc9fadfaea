// Package logging builds the process-wide slog.Logger, following the
// teacher's cli/deps.go pattern: a single slog.LevelVar shared between the
// handler and the --verbose flag, so toggling verbosity at runtime never
// requires rebuilding the logger.
package logging

import (
	"io"
	"log/slog"
)

// New builds a text-handler logger writing to w at level.Level(), sharing
// level with the caller so it can be flipped after construction (e.g. by
// --verbose on the root command).
func New(w io.Writer, level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewLevelVar returns a LevelVar defaulting to Info, raised to Debug by
// the CLI's --verbose flag.
func NewLevelVar() *slog.LevelVar {
	var level slog.LevelVar
	level.Set(slog.LevelInfo)
	return &level
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
