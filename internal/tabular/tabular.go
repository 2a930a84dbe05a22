// Package tabular reads spreadsheets and delimited text into typed cells.
// It backs both the tabular extractor and the rules loader.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Cell is one spreadsheet value.
type Cell struct {
	// Value is the cell's displayed value.
	Value string

	// Text is true for string-typed cells. Numeric, boolean and empty
	// cells are false.
	Text bool
}

// Sheet is a named grid of cells.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Strings returns the values of every text cell in row-major order.
func (s Sheet) Strings() []string {
	var out []string
	for _, row := range s.Rows {
		for _, cell := range row {
			if cell.Text {
				out = append(out, cell.Value)
			}
		}
	}
	return out
}

// Supported reports whether ext (with leading dot) can be read.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".csv", ".xlsx", ".xls":
		return true
	default:
		return false
	}
}

// ReadFile reads the table at path, choosing the parser by extension.
func ReadFile(path string) ([]Sheet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(ext) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, err
	}

	switch ext {
	case ".csv":
		sheet, err := ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		sheet.Name = filepath.Base(path)
		return []Sheet{sheet}, nil
	case ".xlsx":
		return ReadXLSX(bytes.NewReader(data))
	default:
		return ReadXLS(bytes.NewReader(data))
	}
}

// ReadCSV parses delimited text. Ragged rows are allowed.
func ReadCSV(r io.Reader) (Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: csv: %w", domain.ErrInvalidInput, err)
	}

	sheet := Sheet{Rows: make([][]Cell, 0, len(records))}
	for i, record := range records {
		row := make([]Cell, len(record))
		for j, value := range record {
			if i == 0 && j == 0 {
				value = strings.TrimPrefix(value, "\ufeff")
			}
			row[j] = Cell{Value: value, Text: IsText(value)}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// ReadXLSX parses an Office Open XML workbook, every sheet in order.
func ReadXLSX(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %w", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: xlsx sheet %s: %w", domain.ErrInvalidInput, name, err)
		}

		sheet := Sheet{Name: name, Rows: make([][]Cell, 0, len(rows))}
		for ri, values := range rows {
			row := make([]Cell, len(values))
			for ci, value := range values {
				row[ci] = Cell{Value: value, Text: xlsxIsText(f, name, ci+1, ri+1, value)}
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// xlsxIsText classifies a cell by its stored type, falling back to the
// raw stored value when the cell carries no explicit type.
func xlsxIsText(f *excelize.File, sheet string, col, row int, value string) bool {
	if value == "" {
		return false
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return IsText(value)
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return IsText(value)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return true
	case excelize.CellTypeNumber, excelize.CellTypeBool, excelize.CellTypeDate, excelize.CellTypeError:
		return false
	}

	// Untyped cells are numbers unless their stored value says otherwise;
	// dates keep a numeric serial behind their display format.
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return IsText(value)
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return false
	}
	return IsText(value)
}

// ReadXLS parses a legacy BIFF workbook. The parser panics on some
// malformed files; the panic is returned as an error.
func ReadXLS(r io.ReadSeeker) (sheets []Sheet, err error) {
	defer func() {
		if p := recover(); p != nil {
			sheets = nil
			err = fmt.Errorf("%w: xls parser panic: %v", domain.ErrInvalidInput, p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: xls: %w", domain.ErrInvalidInput, err)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		sheet := Sheet{Name: ws.Name}
		for ri := 0; ri <= int(ws.MaxRow); ri++ {
			xrow := ws.Row(ri)
			if xrow == nil {
				continue
			}
			row := make([]Cell, 0, xrow.LastCol()+1)
			for ci := 0; ci < xrow.LastCol(); ci++ {
				value := xrow.Col(ci)
				row = append(row, Cell{Value: value, Text: IsText(value)})
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// IsText reports whether a raw value reads as a string rather than a
// number or boolean.
func IsText(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return false
	}
	switch strings.ToLower(trimmed) {
	case "true", "false":
		return false
	}
	return true
}
