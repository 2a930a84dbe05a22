package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Aggregator accumulates per-document outcomes into report state.
// Record and RecordUnextracted may be called from many goroutines.
type Aggregator struct {
	mu        sync.Mutex
	keywords  []string
	processed map[string]struct{}
	matched   map[string]struct{}
	results   map[string][]domain.MatchResult
	summaries map[string]domain.FileSummary
	failures  map[string]string
	methods   map[string]string
}

// NewAggregator creates an aggregator for one keyword set.
func NewAggregator(keywords domain.KeywordSet) *Aggregator {
	return &Aggregator{
		keywords:  keywords.Terms(),
		processed: make(map[string]struct{}),
		matched:   make(map[string]struct{}),
		results:   make(map[string][]domain.MatchResult),
		summaries: make(map[string]domain.FileSummary),
		failures:  make(map[string]string),
		methods:   make(map[string]string),
	}
}

// Record stores the match map of a successfully extracted document.
// The document is matched if any keyword is true, otherwise unmatched.
// Recording the same path again replaces its earlier outcome.
func (a *Aggregator) Record(path, method string, matches map[string]bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reset(path)
	a.processed[path] = struct{}{}
	if method != "" {
		a.methods[path] = method
	}

	results := make([]domain.MatchResult, 0, len(a.keywords))
	var summary domain.FileSummary
	for _, keyword := range a.keywords {
		hit := matches[keyword]
		results = append(results, domain.MatchResult{Path: path, Keyword: keyword, Matched: hit})
		if hit {
			summary.MatchedCount++
		} else {
			summary.UnmatchedCount++
		}
	}
	a.results[path] = results
	a.summaries[path] = summary

	if summary.MatchedCount > 0 {
		a.matched[path] = struct{}{}
	}
}

// RecordUnextracted stores a document that produced no usable text.
// It is processed and unmatched with no match results. A sentinel
// outcome keeps a zero tally so the file still appears in the counts.
func (a *Aggregator) RecordUnextracted(path string, outcome domain.ExtractedText) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reset(path)
	a.processed[path] = struct{}{}
	if outcome.Method != "" {
		a.methods[path] = outcome.Method
	}

	reason := outcome.Reason
	if reason == "" {
		reason = outcome.Status.String()
	}
	a.failures[path] = reason

	if outcome.Status == domain.StatusNoText {
		a.summaries[path] = domain.FileSummary{}
	}
}

func (a *Aggregator) reset(path string) {
	delete(a.matched, path)
	delete(a.results, path)
	delete(a.summaries, path)
	delete(a.failures, path)
	delete(a.methods, path)
}

// Processed returns the number of documents recorded so far.
func (a *Aggregator) Processed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.processed)
}

// Finalize returns a snapshot of the aggregate.
// File sets are sorted by path; results are ordered by path, then by
// keyword load order. Later calls to Record do not affect the snapshot.
func (a *Aggregator) Finalize() *domain.Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := &domain.Report{
		Keywords:  append([]string(nil), a.keywords...),
		Processed: sortedKeys(a.processed),
		Matched:   sortedKeys(a.matched),
		Summaries: make(map[string]domain.FileSummary, len(a.summaries)),
		Failures:  make(map[string]string, len(a.failures)),
		Methods:   make(map[string]string, len(a.methods)),
	}

	report.Unmatched = make([]string, 0, len(report.Processed)-len(report.Matched))
	for _, path := range report.Processed {
		if _, ok := a.matched[path]; !ok {
			report.Unmatched = append(report.Unmatched, path)
		}
		report.Results = append(report.Results, a.results[path]...)
	}

	for path, summary := range a.summaries {
		report.Summaries[path] = summary
	}
	for path, reason := range a.failures {
		report.Failures[path] = reason
	}
	for path, method := range a.methods {
		report.Methods[path] = method
	}
	return report
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
