package domain

import "time"

// Report is the immutable snapshot of a finished run.
// It is the only entity written to durable storage.
type Report struct {
	// RunID disambiguates artifacts across runs.
	RunID string

	StartedAt  time.Time
	FinishedAt time.Time

	InputPath  string
	OutputPath string
	RulesPath  string

	// Keywords is the keyword set in load order.
	Keywords []string

	// Processed holds every document attempted, regardless of outcome.
	Processed []string

	// Matched holds processed documents with at least one true result.
	Matched []string

	// Unmatched holds processed documents with no true result,
	// including documents that were skipped or failed extraction.
	Unmatched []string

	// Results holds one entry per (document, keyword) for every
	// document whose extraction succeeded.
	Results []MatchResult

	// Summaries maps a document path to its tally. Documents without
	// match results are absent.
	Summaries map[string]FileSummary

	// Failures maps a document path to the reason it produced no results.
	Failures map[string]string

	// Methods maps a document path to the extraction method used.
	Methods map[string]string
}

// Artifacts names the files written for a report.
type Artifacts struct {
	// TablePath is the flat match table.
	TablePath string

	// SummaryPath is the JSON summary document.
	SummaryPath string
}
