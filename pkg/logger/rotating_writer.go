package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// DailyRotatingWriter is a writer that switches to a new log file every day
type DailyRotatingWriter struct {
	file           *os.File
	currentDate    string
	logDir         string
	filenameFormat string
	now            func() time.Time
	mu             sync.Mutex
}

// NewDailyRotatingWriter creates a new daily rotating writer
func NewDailyRotatingWriter(logDir string, filenameFormat string) (*DailyRotatingWriter, error) {
	return newDailyRotatingWriter(logDir, filenameFormat, time.Now)
}

func newDailyRotatingWriter(logDir, filenameFormat string, now func() time.Time) (*DailyRotatingWriter, error) {
	writer := &DailyRotatingWriter{
		logDir:         logDir,
		filenameFormat: filenameFormat,
		now:            now,
	}

	if err := writer.rotateIfNeeded(); err != nil {
		return nil, err
	}
	return writer, nil
}

// CurrentDate returns the date of the file being written
func (w *DailyRotatingWriter) CurrentDate() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentDate
}

// rotateIfNeeded opens today's file when the date changed. Callers hold mu,
// except the constructor.
func (w *DailyRotatingWriter) rotateIfNeeded() error {
	today := w.now().Format(dateLayout)
	if today == w.currentDate && w.file != nil {
		return nil
	}

	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	logFilePath := filepath.Join(w.logDir, fmt.Sprintf(w.filenameFormat, today))
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", logFilePath, err)
	}

	w.file = file
	w.currentDate = today
	return nil
}

// Write implements the io.Writer interface
func (w *DailyRotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

// WriteString writes a string to the log file
func (w *DailyRotatingWriter) WriteString(s string) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return w.file.WriteString(s)
}

// Close closes the underlying file
func (w *DailyRotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
