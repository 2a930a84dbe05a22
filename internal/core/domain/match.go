package domain

// MatchStatus labels for the results table.
const (
	StatusLabelMatched    = "matched"
	StatusLabelNotMatched = "not matched"
)

// MatchResult is the outcome of testing one keyword against one document.
type MatchResult struct {
	// Path identifies the document.
	Path string

	// Keyword is the term that was tested.
	Keyword string

	// Matched is true if the keyword was found in the extracted text.
	Matched bool
}

// StatusLabel returns the label written to the results table.
func (m MatchResult) StatusLabel() string {
	if m.Matched {
		return StatusLabelMatched
	}
	return StatusLabelNotMatched
}

// FileSummary is the per-document tally of keyword outcomes.
// MatchedCount + UnmatchedCount equals the keyword set size for
// every document that produced match results.
type FileSummary struct {
	MatchedCount   int `json:"matched_count"`
	UnmatchedCount int `json:"unmatched_count"`
}

// Total returns the number of keywords tested.
func (f FileSummary) Total() int {
	return f.MatchedCount + f.UnmatchedCount
}
