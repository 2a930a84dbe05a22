package extractors

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.Dispatcher = (*Registry)(nil)

// SkipUnsupported is the skip reason for extensions without an extractor.
const SkipUnsupported = "unsupported format"

// Registry maps file extensions to their extractors.
// It is built once at startup and read concurrently by scan workers.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// Register binds every extension the extractor declares.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range e.Extensions() {
		r.extractors[normalise(ext)] = e
	}
}

// Lookup returns the extractor bound to an extension.
func (r *Registry) Lookup(ext string) (driven.Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[normalise(ext)]
	return e, ok
}

// Has returns true if an extractor is bound to the extension.
func (r *Registry) Has(ext string) bool {
	_, ok := r.Lookup(ext)
	return ok
}

// Dispatch selects the extractor for path by its extension.
// Unsupported extensions produce a skip decision.
func (r *Registry) Dispatch(path string) driven.Decision {
	doc := domain.NewDocument(path)

	e, ok := r.Lookup(doc.Ext)
	if !ok {
		logger.Warn("Skipping unsupported file type: %s", path)
		return driven.Decision{Document: doc, SkipReason: SkipUnsupported}
	}

	logger.Debug("Dispatching %s to %s extractor", path, e.Name())
	return driven.Decision{Document: doc, Extractor: e}
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ByExtractor groups registered extensions under their extractor name.
// Extension lists are sorted.
func (r *Registry) ByExtractor() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make(map[string][]string)
	for ext, e := range r.extractors {
		groups[e.Name()] = append(groups[e.Name()], ext)
	}
	for name := range groups {
		sort.Strings(groups[name])
	}
	return groups
}

func normalise(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
