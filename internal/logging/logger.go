// Package logging writes the sfstage operation log.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger records stage and test operations to a rotating file. Terminal output
// is left to the ui package.
type Logger struct {
	logger *log.Logger
	closer io.Closer
}

// New returns a Logger writing to path, rotating at 5 MB.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return &Logger{
		logger: log.New(logFile, "", log.LstdFlags),
		closer: logFile,
	}, nil
}

// NewWriter returns a Logger writing to w. Used by tests.
func NewWriter(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", 0)}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Operation logs a named operation and its details.
func (l *Logger) Operation(operation, details string) {
	l.logger.Printf("Operation: %s, Details: %s", operation, details)
}

// Logf logs a formatted message.
func (l *Logger) Logf(format string, v ...interface{}) {
	l.logger.Printf(format, v...)
}

// Error logs err.
func (l *Logger) Error(err error) {
	l.logger.Printf("Error: %s", err)
}
