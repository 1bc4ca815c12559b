package internal

import (
	"io"

	"github.com/micutio/jettrack/pkg/logger"
)

// LogParams contains the writers for console output and logs.
// These vary depending on whether jettrack runs in report or tui mode.
// # Report mode
// - console output goes to stdout
// - logs go to stderr
// # TUI mode
// - console output is discarded
// - logs go to the configured log file
// .
type LogParams struct {
	ConsoleOut io.Writer
	ErrorOut   io.Writer
}

// NewLogger builds the application logger writing to params.ErrorOut.
func NewLogger(params LogParams, cfg LogConfig) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: params.ErrorOut,
	})
}
