package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Matcher tests keywords against extracted text.
// It is stateless and safe for concurrent use.
type Matcher struct {
	mode domain.MatchMode
}

// NewMatcher creates a matcher for the given mode.
// An unrecognised mode falls back to substring matching.
func NewMatcher(mode domain.MatchMode) *Matcher {
	if !mode.IsValid() {
		mode = domain.MatchModeSubstring
	}
	return &Matcher{mode: mode}
}

// Mode returns the active match mode.
func (m *Matcher) Mode() domain.MatchMode {
	return m.mode
}

// Match returns one entry per keyword, true if the keyword occurs in text.
// Matching is case-sensitive in both modes.
func (m *Matcher) Match(text string, keywords domain.KeywordSet) map[string]bool {
	terms := keywords.Terms()
	out := make(map[string]bool, len(terms))
	for _, term := range terms {
		switch m.mode {
		case domain.MatchModeWord:
			out[term] = containsWord(text, term)
		default:
			out[term] = strings.Contains(text, term)
		}
	}
	return out
}

// containsWord reports whether term occurs in text with no word character
// immediately before or after it.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(term); {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
