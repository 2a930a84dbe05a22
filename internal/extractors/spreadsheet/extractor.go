// Package spreadsheet extracts the string cells of CSV and Excel workbooks.
package spreadsheet

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
	"github.com/custodia-labs/kwscan/internal/tabular"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "spreadsheet"

// Extractor handles CSV, XLSX and XLS files.
type Extractor struct{}

// New creates a new spreadsheet extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".csv", ".xlsx", ".xls"}
}

// Extract flattens every string-typed cell across all sheets into
// newline-separated text. Numeric and boolean cells are dropped.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	var sheets []tabular.Sheet
	switch doc.Ext {
	case ".csv":
		var sheet tabular.Sheet
		sheet, err = tabular.ReadCSV(bytes.NewReader(data))
		sheets = []tabular.Sheet{sheet}
	case ".xls":
		sheets, err = tabular.ReadXLS(bytes.NewReader(data))
	default:
		sheets, err = tabular.ReadXLSX(bytes.NewReader(data))
	}
	if err != nil {
		return domain.Failed(Method, err)
	}

	var values []string
	for _, sheet := range sheets {
		values = append(values, sheet.Strings()...)
	}

	logger.Info("Text extracted from %s sheet data: %s", strings.TrimPrefix(doc.Ext, "."), doc.Path)
	return domain.Extracted(Method, strings.Join(values, "\n"))
}
