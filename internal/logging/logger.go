package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	debugLogger *log.Logger
	logFile     *os.File
)

// InitLogger initializes the debug logger to write to a dated file inside the
// application data directory. Until this is called the package-level helpers
// are no-ops, so tests and one-off tooling never create files.
func InitLogger(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dataDir, fmt.Sprintf("concierge-%s.log", time.Now().Format("2006-01-02")))

	var err error
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
	debugLogger.Printf("=== Concierge Chat Log Started ===")

	return nil
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf("[DEBUG] "+format, v...)
	}
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf("[INFO] "+format, v...)
	}
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf("[WARN] "+format, v...)
	}
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf("[ERROR] "+format, v...)
	}
}

// Close closes the log file
func Close() {
	if logFile != nil {
		debugLogger.Printf("=== Concierge Chat Log Ended ===")
		logFile.Close()
	}
}
