package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchResult_StatusLabel(t *testing.T) {
	assert.Equal(t, "matched", MatchResult{Matched: true}.StatusLabel())
	assert.Equal(t, "not matched", MatchResult{Matched: false}.StatusLabel())
}

func TestFileSummary_Total(t *testing.T) {
	assert.Equal(t, 0, FileSummary{}.Total())
	assert.Equal(t, 3, FileSummary{MatchedCount: 1, UnmatchedCount: 2}.Total())
}
