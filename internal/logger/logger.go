package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// DocumentOpened logs a document being opened
func (l *Logger) DocumentOpened(path string, size int) {
	l.Info("document opened",
		"path", path,
		"bytes", size)
}

// ParsePushed logs one incremental parse push
func (l *Logger) ParsePushed(delta int, blocks int, duration time.Duration) {
	l.Debug("parse push",
		"delta_bytes", delta,
		"blocks", blocks,
		"duration", duration.Round(time.Microsecond))
}

// SectionResolved logs an incomplete section gaining its references
func (l *Logger) SectionResolved(index int) {
	l.Debug("incomplete section resolved",
		"index", index)
}

// ImageRequested logs the start of an image fetch
func (l *Logger) ImageRequested(url string) {
	l.Debug("image requested",
		"url", url)
}

// ImageLoaded logs a successful image fetch
func (l *Logger) ImageLoaded(url string) {
	l.Debug("image loaded",
		"url", url)
}

// ImageFailed logs a failed image fetch
func (l *Logger) ImageFailed(url string, err error) {
	l.Warn("image failed",
		"url", url,
		"error", err)
}

// LinkOpened logs a link handed to the OS opener
func (l *Logger) LinkOpened(url string) {
	l.Info("link opened",
		"url", url)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(theme string, textSize float64) {
	l.Debug("config loaded",
		"theme", theme,
		"text_size", textSize)
}

// SessionSaved logs a session store write
func (l *Logger) SessionSaved(path string, documents int) {
	l.Debug("sessions saved",
		"path", path,
		"documents", documents)
}
