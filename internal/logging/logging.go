// Package logging builds the charmbracelet loggers shared by the CLI, the
// tracker and the SSH server.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr at the given level.
func New(level, prefix string) (*log.Logger, error) {
	return NewWithWriter(os.Stderr, level, prefix)
}

// NewWithWriter returns a logger writing to w. An empty level means info.
func NewWithWriter(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: invalid level %q: %w", level, err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that drops everything, for tests and quiet callers.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
