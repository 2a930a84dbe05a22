package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, "plaintext", e.Name())
	assert.Equal(t, []string{".txt", ".log"}, e.Extensions())
}

func TestExtract_Verbatim(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"text file", "notes.txt", "invoice approved"},
		{"log file", "app.log", "2024-01-01 ERROR failed\n2024-01-02 INFO ok\n"},
		{"empty file", "empty.txt", ""},
		{"unicode", "uni.txt", "café 日本語\r\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			out := New().Extract(context.Background(), domain.NewDocument(path))

			require.True(t, out.OK())
			assert.Equal(t, tc.content, out.Text)
			assert.Equal(t, "plaintext", out.Method)
		})
	}
}

func TestExtract_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	out := New().Extract(context.Background(), domain.NewDocument(path))

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, "file not found: "+path, out.Reason)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
