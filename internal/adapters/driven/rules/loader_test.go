package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

func writeRules(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_CSV(t *testing.T) {
	path := writeRules(t, "rules.csv", "id,Keywords,notes\n1,invoice,a\n2,rejected,b\n3,invoice,dup\n4,,blank\n5,  total  ,trim\n")

	keywords, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"invoice", "rejected", "total"}, keywords.Terms())
}

func TestLoader_Load_NumericKeywordsKept(t *testing.T) {
	path := writeRules(t, "rules.csv", "keywords\n2024\nINV-7\n")

	keywords, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "INV-7"}, keywords.Terms())
}

func TestLoader_Load_HeaderOnlyIsEmptySet(t *testing.T) {
	path := writeRules(t, "rules.csv", "keywords\n")

	keywords, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.True(t, keywords.IsEmpty())
}

func TestLoader_Load_XLSX(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"keywords"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"confidential"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"secret"}))
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	require.NoError(t, f.SaveAs(path))

	keywords, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"confidential", "secret"}, keywords.Terms())
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "rules.csv") },
			wantErr: domain.ErrRulesUnreadable,
		},
		{
			name:    "unsupported format",
			path:    func(t *testing.T) string { return writeRules(t, "rules.txt", "keywords\nx\n") },
			wantErr: domain.ErrRulesUnreadable,
		},
		{
			name:    "no keywords column",
			path:    func(t *testing.T) string { return writeRules(t, "rules.csv", "terms\nx\n") },
			wantErr: domain.ErrMissingKeywordsColumn,
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeRules(t, "rules.csv", "") },
			wantErr: domain.ErrMissingKeywordsColumn,
		},
		{
			name:    "corrupt workbook",
			path:    func(t *testing.T) string { return writeRules(t, "rules.xlsx", "not a zip") },
			wantErr: domain.ErrRulesUnreadable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), tc.path(t))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
