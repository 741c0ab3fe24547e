package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a stderr logger at the named level. Unknown names fall
// back to info.
func SetupLogger(level string) *log.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger is SetupLogger writing to w.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.New(w)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
