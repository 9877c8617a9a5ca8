package obs

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger writing to stderr.
func NewLogger(debug bool) *log.Logger {
	return newLogger(os.Stderr, debug)
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// Install makes l the package-level logger used across the service.
func Install(l *log.Logger) {
	log.SetDefault(l)
}
