// Package log provides helpers for logging and error reporting.
package log

import (
	"io"
	"log"
	"os"

	"github.com/getsentry/raven-go"

	"github.com/hiconvo/notifier/errors"
)

var _logger = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput redirects the logger, mostly for tests.
func SetOutput(w io.Writer) {
	_logger.SetOutput(w)
}

// Print logs to stderr.
func Print(i ...interface{}) {
	_logger.Println(i...)
}

// Printf logs to stderr with a format string.
func Printf(format string, i ...interface{}) {
	_logger.Printf(format, i...)
}

func Panicf(format string, i ...interface{}) {
	_logger.Panicf(format, i...)
}

// Alarm logs the error to stderr and reports it to Sentry, tagged with the
// error's kind.
func Alarm(err error) {
	kind := errors.KindOf(err).String()

	raven.CaptureError(err, map[string]string{"kind": kind})
	_logger.Printf("Internal Error (%s): %v", kind, err.Error())
}
