package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file or rules format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFileNotFound indicates a document vanished between listing and extraction.
	ErrFileNotFound = errors.New("file not found")

	// ErrToolNotFound indicates an external extraction tool is not installed.
	ErrToolNotFound = errors.New("tool not found")

	// Run Errors.
	// These abort a scan before any document is processed.

	// ErrInputDirMissing indicates the input directory does not exist.
	ErrInputDirMissing = errors.New("input directory does not exist")

	// ErrInputDirEmpty indicates the input directory contains no files.
	ErrInputDirEmpty = errors.New("no files found in input directory")

	// ErrRulesUnreadable indicates the rules source could not be read or parsed.
	ErrRulesUnreadable = errors.New("rules file unreadable")

	// ErrMissingKeywordsColumn indicates the rules table has no keywords column.
	ErrMissingKeywordsColumn = errors.New("rules file has no keywords column")
)
