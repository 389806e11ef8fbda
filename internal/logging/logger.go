// Package logging writes hnbar's log to a daily file. The terminal belongs to
// the TUI, so nothing is ever logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the process logger. It discards until Init is called.
	Logger = log.New(io.Discard)

	logFile *os.File
)

// FileName is the log file for day.
func FileName(day time.Time) string {
	return fmt.Sprintf("hnbar-%s.log", day.Format("2006-01-02"))
}

// Init opens today's log file in dir at the given level.
func Init(dir, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName(time.Now())), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	Logger = New(f, lvl)
	return nil
}

// New creates a logger with hnbar's format writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Close flushes and closes the log file.
func Close() {
	if logFile == nil {
		return
	}
	Logger.Info("hnbar shutting down")
	logFile.Close()
	logFile = nil
	Logger = log.New(io.Discard)
}

// WithPrefix returns a component logger, e.g. WithPrefix("controller").
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
