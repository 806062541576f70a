package generate

import (
	"io"
	"log/slog"
	"os"
)

// newLogger builds the logging collaborator injected into the pipeline.
// Logging is off unless --log is given; -v steps warn -> info -> debug, and
// a third -v adds source locations.
func newLogger(enabled bool, verbosity int) *slog.Logger {
	if !enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := &slog.HandlerOptions{}
	switch verbosity {
	case 0:
		opts.Level = slog.LevelWarn
	case 1:
		opts.Level = slog.LevelInfo
	default:
		opts.Level = slog.LevelDebug
	}
	if verbosity >= 3 {
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
