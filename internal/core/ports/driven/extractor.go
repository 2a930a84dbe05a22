package driven

import (
	"context"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Extractor converts a document of one format family into flat text.
// Implementations must not return errors or panic: every I/O and parser
// failure is reported through the returned ExtractedText.
type Extractor interface {
	// Name identifies the extractor in logs and reports.
	Name() string

	// Extensions returns the lowercase file extensions (with leading dot)
	// this extractor handles.
	Extensions() []string

	// Extract reads the document and returns its text outcome.
	Extract(ctx context.Context, doc domain.Document) domain.ExtractedText
}

// Decision is the outcome of dispatching a path.
type Decision struct {
	// Document is the document built from the path.
	Document domain.Document

	// Extractor handles the document. Nil when the format is unsupported.
	Extractor Extractor

	// SkipReason explains a skip decision.
	SkipReason string
}

// Skipped returns true if no extractor handles the document.
func (d Decision) Skipped() bool {
	return d.Extractor == nil
}

// Dispatcher maps a path to the extractor for its format.
type Dispatcher interface {
	// Dispatch selects the extractor for path. Unsupported formats yield a
	// skip decision, never an error.
	Dispatch(path string) Decision

	// Extensions returns every registered extension, sorted.
	Extensions() []string
}
