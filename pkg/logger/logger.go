package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// FilenameFormat is the daily log file name; %s is replaced by the date
const FilenameFormat = "walletconnect-%s.log"

// Global variable to track the rotating writer for proper cleanup
var activeRotatingWriter *DailyRotatingWriter

// SetupLogging configures the application logging to stdout and a daily
// rotating file in logDir
func SetupLogging(logDir string) (*log.Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter, err := NewDailyRotatingWriter(logDir, FilenameFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writer: %w", err)
	}
	activeRotatingWriter = fileWriter

	logger := log.New(io.MultiWriter(os.Stdout, fileWriter), "", log.LstdFlags|log.Lshortfile)

	logFilePath := filepath.Join(logDir, fmt.Sprintf(FilenameFormat, fileWriter.CurrentDate()))
	logger.Printf("Logging initialized to %s", logFilePath)

	return logger, nil
}

// SetupFallbackLogger creates a simple console logger when file logging fails
func SetupFallbackLogger() *log.Logger {
	fmt.Printf("Failed to set up file logging, using console logging only\n")
	return log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
}

// GetWriter returns the writer for the logger
func GetWriter(logger *log.Logger) io.Writer {
	return logger.Writer()
}

// CloseLogger properly closes the log file
func CloseLogger() error {
	if activeRotatingWriter != nil {
		err := activeRotatingWriter.Close()
		activeRotatingWriter = nil
		return err
	}
	return nil
}
