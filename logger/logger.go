// Package logger provides the default loggers used when generating documents.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ProgressLogger logs the main steps of the document generation.
var ProgressLogger = New(os.Stdout, "paginate.progress", log.InfoLevel)

// WarningLogger emits a warning for each non fatal layout condition, like
// over-committed dimensions or elements overflowing a page.
var WarningLogger = New(os.Stderr, "paginate.warning", log.WarnLevel)

// New returns a logger writing to [w], with the timestamp format
// used across the command line tools.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          prefix,
	})
}

// Discard returns a logger dropping every message.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
