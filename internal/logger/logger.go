// Package logger provides process-wide levelled logging for kwscan.
// Output defaults to stderr at Info level. Init attaches a log file for
// the duration of a run and Close detaches it again.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a logging threshold.
type Level int

// Available levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

var (
	mu         sync.RWMutex
	level                = LevelInfo
	output     io.Writer = os.Stderr
	timestamps bool
	logFile    *os.File
	now        = time.Now
)

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelInfo)
}

// IsVerbose returns true if debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return level <= LevelDebug
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetTimestamps prefixes every line with the local time when enabled.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// Init opens path for appending and directs all output to it with timestamps.
// Any previously attached file is closed.
func Init(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	output = f
	timestamps = true
	return nil
}

// Close detaches the log file opened by Init and restores stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	output = os.Stderr
	timestamps = false
	return err
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(LevelDebug, "DEBUG", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if level <= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message.
func Info(format string, args ...any) {
	write(LevelInfo, "INFO", format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	write(LevelWarn, "WARN", format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	write(LevelError, "ERROR", format, args...)
}

// write holds the write lock so concurrent callers do not interleave output.
func write(l Level, tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	if timestamps {
		fmt.Fprintf(output, "%s [%s] "+format+"\n", append([]any{now().Format("2006-01-02 15:04:05"), tag}, args...)...)
		return
	}
	fmt.Fprintf(output, "["+tag+"] "+format+"\n", args...)
}
