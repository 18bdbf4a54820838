// Package logger builds charmbracelet/log loggers for the CLI.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger on stderr that respects the global log level.
func New(prefix string) *log.Logger {
	level := log.GetLevel()
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: level <= log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           level,
	})
}

// SetDebug switches the global level between debug and warn.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
