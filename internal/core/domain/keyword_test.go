package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeywordSet(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"empty", nil, []string{}},
		{"keeps order", []string{"invoice", "rejected"}, []string{"invoice", "rejected"}},
		{"drops duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"trims whitespace", []string{"  invoice ", "invoice"}, []string{"invoice"}},
		{"drops blanks", []string{"", "   ", "x"}, []string{"x"}},
		{"case sensitive", []string{"Cat", "cat"}, []string{"Cat", "cat"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ks := NewKeywordSet(tc.input...)
			assert.Equal(t, tc.expected, ks.Terms())
			assert.Equal(t, len(tc.expected), ks.Len())
			assert.Equal(t, len(tc.expected) == 0, ks.IsEmpty())
		})
	}
}

func TestKeywordSet_TermsIsCopy(t *testing.T) {
	ks := NewKeywordSet("a", "b")
	terms := ks.Terms()
	terms[0] = "z"
	assert.Equal(t, []string{"a", "b"}, ks.Terms())
}
