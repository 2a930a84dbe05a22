package spreadsheet

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

func TestNew(t *testing.T) {
	e := New()
	assert.Equal(t, "spreadsheet", e.Name())
	assert.Equal(t, []string{".csv", ".xlsx", ".xls"}, e.Extensions())
}

func TestExtract_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("vendor,amount\nAcme,100\nGlobex,250.75\n"), 0o600))

	out := New().Extract(context.Background(), domain.NewDocument(path))

	require.True(t, out.OK(), out.Reason)
	assert.Equal(t, "vendor\namount\nAcme\nGlobex", out.Text)
}

func TestExtract_XLSXAllSheets(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "invoice"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 99))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Second", "A1", "approved"))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out := New().Extract(context.Background(), domain.NewDocument(path))

	require.True(t, out.OK(), out.Reason)
	assert.Equal(t, "invoice\napproved", out.Text)
}

func TestExtract_CorruptXLS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.xls")
	require.NoError(t, os.WriteFile(path, []byte("garbage bytes"), 0o600))

	out := New().Extract(context.Background(), domain.NewDocument(path))

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, "spreadsheet", out.Method)
}

func TestExtract_FileNotFound(t *testing.T) {
	out := New().Extract(context.Background(), domain.NewDocument("/no/such/book.xlsx"))
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "file not found")
}
