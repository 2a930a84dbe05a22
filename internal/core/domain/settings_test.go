package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchMode_IsValid(t *testing.T) {
	assert.True(t, MatchModeSubstring.IsValid())
	assert.True(t, MatchModeWord.IsValid())
	assert.False(t, MatchMode("regex").IsValid())
	assert.False(t, MatchMode("").IsValid())
}

func TestMatchMode_Description(t *testing.T) {
	assert.Contains(t, MatchModeSubstring.Description(), "Substring")
	assert.Contains(t, MatchModeWord.Description(), "Whole word")
	assert.Equal(t, "Unknown", MatchMode("other").Description())
	assert.Equal(t, "word", MatchModeWord.String())
}

func TestTableFormat(t *testing.T) {
	assert.True(t, TableFormatXLSX.IsValid())
	assert.True(t, TableFormatCSV.IsValid())
	assert.False(t, TableFormat("ods").IsValid())
	assert.Equal(t, ".xlsx", TableFormatXLSX.Extension())
	assert.Equal(t, ".csv", TableFormatCSV.Extension())
}

func TestDefaultScanSettings(t *testing.T) {
	s := DefaultScanSettings()
	assert.GreaterOrEqual(t, s.Workers, 1)
	assert.Equal(t, 2*time.Minute, s.FileTimeout)
	assert.Equal(t, MatchModeSubstring, s.MatchMode)
	assert.Equal(t, TableFormatXLSX, s.TableFormat)
	assert.NoError(t, s.Validate())
}

func TestScanSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScanSettings)
	}{
		{"zero workers", func(s *ScanSettings) { s.Workers = 0 }},
		{"negative timeout", func(s *ScanSettings) { s.FileTimeout = -time.Second }},
		{"bad mode", func(s *ScanSettings) { s.MatchMode = "fuzzy" }},
		{"bad format", func(s *ScanSettings) { s.TableFormat = "ods" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultScanSettings()
			tc.mutate(&s)
			err := s.Validate()
			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
