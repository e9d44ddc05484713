// common/logger.go

// Package common implements shared functionality used across the MetaCleaner application.
// This file contains logging functionality.

package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// earlyLogBuffer stores log messages before logger is initialized
var earlyLogBuffer []string
var earlyLogMutex sync.Mutex

// CaptureEarlyLog captures a log message before the logger is initialized
func CaptureEarlyLog(level Severity, format string, args ...interface{}) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf("%s [%s] %s", timestamp, level, fmt.Sprintf(format, args...))

	earlyLogBuffer = append(earlyLogBuffer, message)
}

// FlushEarlyLogs writes all captured early logs to the logger, keeping their original timestamps
func FlushEarlyLogs(logger *Logger) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	if logger == nil || len(earlyLogBuffer) == 0 {
		return
	}

	logger.Info("--- Flushing %d early log messages ---", len(earlyLogBuffer))
	for _, message := range earlyLogBuffer {
		logger.writeRaw(message + "\n")
	}
	earlyLogBuffer = nil
	logger.Info("--- End of early logs ---")
}

// Logger writes timestamped, severity-tagged lines to a log file and rotates it by size and age.
type Logger struct {
	logPath     string
	out         io.Writer
	file        *os.File
	mutex       sync.Mutex
	maxSizeMB   int
	maxAgeDays  int
	currentSize int64
}

// NewLogger creates a new logger instance writing to logPath
func NewLogger(logPath string, maxSizeMB int, maxAgeDays int) (*Logger, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = LogMaxSizeMB
	}
	if maxAgeDays <= 0 {
		maxAgeDays = LogMaxAgeDays
	}
	logger := &Logger{
		logPath:    logPath,
		maxSizeMB:  maxSizeMB,
		maxAgeDays: maxAgeDays,
	}

	rootLogPath := filepath.Join(".", filepath.Base(logPath))
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		logger.logPath = rootLogPath
		CaptureEarlyLog(SeverityWarning, "Failed to create log directory at '%s': %v", filepath.Dir(logPath), err)
		CaptureEarlyLog(SeverityWarning, "Attempting fallback to root directory: %s", rootLogPath)
	}

	if err := logger.checkRotation(); err != nil {
		CaptureEarlyLog(SeverityWarning, "Failed to check log rotation: %v", err)
	}

	file, err := os.OpenFile(logger.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		if logger.logPath == rootLogPath {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		CaptureEarlyLog(SeverityWarning, "Failed to open log file at '%s': %v", logPath, err)
		CaptureEarlyLog(SeverityWarning, "Attempting fallback to root directory: %s", rootLogPath)

		logger.logPath = rootLogPath
		file, err = os.OpenFile(rootLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file at primary and fallback locations: %w", err)
		}
	}

	logger.file = file
	logger.out = file
	if info, err := file.Stat(); err == nil {
		logger.currentSize = info.Size()
	}

	return logger, nil
}

// NewWriterLogger creates a logger that writes to w without rotation.
// Used by the CLI (stderr) and by tests.
func NewWriterLogger(w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{out: w}
}

// Path returns the current log file path, empty for writer loggers
func (l *Logger) Path() string {
	return l.logPath
}

// Log writes a message to the log
func (l *Logger) Log(level Severity, format string, args ...interface{}) error {
	if l == nil {
		return nil
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.out == nil {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf("%s [%s] %s\n", timestamp, level, fmt.Sprintf(format, args...))

	if l.file != nil && l.currentSize >= int64(l.maxSizeMB*1024*1024) {
		if err := l.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	n, err := io.WriteString(l.out, message)
	if err != nil {
		return fmt.Errorf("failed to write to log file: %w", err)
	}

	l.currentSize += int64(n)
	return nil
}

func (l *Logger) writeRaw(message string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.out != nil {
		n, _ := io.WriteString(l.out, message)
		l.currentSize += int64(n)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(SeverityInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(SeverityWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(SeverityError, format, args...)
}

// Critical logs a critical message
func (l *Logger) Critical(format string, args ...interface{}) {
	l.Log(SeverityCritical, format, args...)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.out = nil
		return err
	}
	return nil
}

// checkRotation checks if log rotation is needed based on age or size
func (l *Logger) checkRotation() error {
	info, err := os.Stat(l.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	if time.Since(info.ModTime()).Hours() >= float64(l.maxAgeDays*24) {
		return l.rotate()
	}
	if info.Size() >= int64(l.maxSizeMB*1024*1024) {
		return l.rotate()
	}
	return nil
}

// rotatedName returns "<name>_<timestamp><ext>" next to the active log file
func (l *Logger) rotatedName(now time.Time) string {
	base := filepath.Base(l.logPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(l.logPath), fmt.Sprintf("%s_%s%s", name, now.Format("2006-01-02@15_04_05"), ext))
}

// rotate performs log rotation
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
	}

	if err := os.Rename(l.logPath, l.rotatedName(time.Now())); err != nil {
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	file, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create new log file: %w", err)
	}

	l.file = file
	l.out = file
	l.currentSize = 0

	l.cleanOldLogs()
	return nil
}

// cleanOldLogs removes rotated log files older than 1 year
func (l *Logger) cleanOldLogs() {
	base := filepath.Base(l.logPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	files, err := filepath.Glob(filepath.Join(filepath.Dir(l.logPath), fmt.Sprintf("%s_*%s", name, ext)))
	if err != nil {
		return
	}

	oneYearAgo := time.Now().AddDate(-1, 0, 0)
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().Before(oneYearAgo) {
			os.Remove(file)
		}
	}
}
