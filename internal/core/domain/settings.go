package domain

import (
	"fmt"
	"runtime"
	"time"
)

const unknownDescription = "Unknown"

// MatchMode defines how a keyword is located in extracted text.
type MatchMode string

// Available match modes.
const (
	// MatchModeSubstring matches a keyword anywhere, including inside other words.
	MatchModeSubstring MatchMode = "substring"

	// MatchModeWord matches a keyword only when bounded by non-word characters.
	MatchModeWord MatchMode = "word"
)

// IsValid returns true if the match mode is recognised.
func (m MatchMode) IsValid() bool {
	switch m {
	case MatchModeSubstring, MatchModeWord:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m MatchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m MatchMode) Description() string {
	switch m {
	case MatchModeSubstring:
		return "Substring (case-sensitive containment)"
	case MatchModeWord:
		return "Whole word (case-sensitive)"
	default:
		return unknownDescription
	}
}

// TableFormat identifies the file format of the results table.
type TableFormat string

// Available table formats.
const (
	TableFormatXLSX TableFormat = "xlsx"
	TableFormatCSV  TableFormat = "csv"
)

// IsValid returns true if the table format is recognised.
func (f TableFormat) IsValid() bool {
	return f == TableFormatXLSX || f == TableFormatCSV
}

// Extension returns the file extension including the leading dot.
func (f TableFormat) Extension() string {
	return "." + string(f)
}

// Config keys for scan settings.
const (
	ConfigKeyWorkers     = "scan.workers"
	ConfigKeyFileTimeout = "scan.file_timeout"
	ConfigKeyMatchMode   = "match.mode"
	ConfigKeyTableFormat = "output.format"
	ConfigKeyLogFile     = "log.file"
)

// ScanSettings holds tunables for a scan run.
type ScanSettings struct {
	// Workers bounds concurrent extractions.
	Workers int

	// FileTimeout bounds a single document's extraction. Zero disables it.
	FileTimeout time.Duration

	// MatchMode selects keyword matching semantics.
	MatchMode MatchMode

	// TableFormat selects the results table format.
	TableFormat TableFormat

	// LogFile is the log destination. Empty means the output directory's process.log.
	LogFile string
}

// DefaultScanSettings returns settings with sensible defaults.
func DefaultScanSettings() ScanSettings {
	return ScanSettings{
		Workers:     runtime.NumCPU(),
		FileTimeout: 2 * time.Minute,
		MatchMode:   MatchModeSubstring,
		TableFormat: TableFormatXLSX,
	}
}

// Validate checks the settings are usable.
func (s ScanSettings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidInput, s.Workers)
	}
	if s.FileTimeout < 0 {
		return fmt.Errorf("%w: file timeout must not be negative", ErrInvalidInput)
	}
	if !s.MatchMode.IsValid() {
		return fmt.Errorf("%w: unknown match mode %q", ErrInvalidInput, s.MatchMode)
	}
	if !s.TableFormat.IsValid() {
		return fmt.Errorf("%w: unknown table format %q", ErrInvalidInput, s.TableFormat)
	}
	return nil
}
