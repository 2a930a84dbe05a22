package domain

import "strings"

// KeywordSet is an ordered sequence of unique search terms.
// It is loaded once and shared read-only across all documents.
type KeywordSet struct {
	terms []string
}

// NewKeywordSet builds a set from raw terms.
// Surrounding whitespace is trimmed, empty terms are dropped and
// duplicates keep their first position.
func NewKeywordSet(terms ...string) KeywordSet {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return KeywordSet{terms: out}
}

// Terms returns a copy of the terms in load order.
func (k KeywordSet) Terms() []string {
	out := make([]string, len(k.terms))
	copy(out, k.terms)
	return out
}

// Len returns the number of terms.
func (k KeywordSet) Len() int {
	return len(k.terms)
}

// IsEmpty returns true if the set has no terms.
func (k KeywordSet) IsEmpty() bool {
	return len(k.terms) == 0
}
