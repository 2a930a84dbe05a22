package driving

import (
	"context"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Scanner runs a keyword scan over a directory tree.
type Scanner interface {
	// Scan extracts, matches and reports every file below req.Directory.
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}

// ProgressFunc is called after each file is recorded.
type ProgressFunc func(done, total int)

// ScanRequest describes one run.
type ScanRequest struct {
	// Directory is the input root. A file:// prefix is accepted.
	Directory string

	// RulesPath is the rules table with a keywords column.
	RulesPath string

	// OutputDir receives the artifacts. Created if absent.
	OutputDir string

	// Exclude lists files or directories left out of the listing, such
	// as a log file written below Directory. OutputDir is always
	// excluded when it lies inside Directory.
	Exclude []string

	// Settings tunes concurrency, timeouts and matching.
	Settings domain.ScanSettings

	// Progress is optional.
	Progress ProgressFunc
}

// ScanResult is the outcome of a successful run.
type ScanResult struct {
	// Report is the finalised aggregate.
	Report *domain.Report

	// Artifacts names the files written.
	Artifacts domain.Artifacts
}
