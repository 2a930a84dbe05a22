// Package report writes the results table and the JSON summary of a scan.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.ReportWriter = (*Writer)(nil)

// SheetName is the worksheet holding the results table.
const SheetName = "Results"

// Header is the results table header.
var Header = []string{"File Name", "File Path", "Search Keyword", "Status"}

const stampLayout = "20060102-150405"

// Writer emits report artifacts to the local filesystem.
type Writer struct{}

// NewWriter creates a new report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write emits the results table and summary document into dir.
// File names carry the run start time and the first eight characters
// of the run id, so repeated runs into one directory do not collide.
func (w *Writer) Write(
	ctx context.Context,
	report *domain.Report,
	format domain.TableFormat,
	dir string,
) (domain.Artifacts, error) {
	if report == nil {
		return domain.Artifacts{}, fmt.Errorf("%w: report is nil", domain.ErrInvalidInput)
	}
	if !format.IsValid() {
		return domain.Artifacts{}, fmt.Errorf("%w: unknown table format %q", domain.ErrInvalidInput, format)
	}
	if err := ctx.Err(); err != nil {
		return domain.Artifacts{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Artifacts{}, fmt.Errorf("create %s: %w", dir, err)
	}

	suffix := artifactSuffix(report)
	artifacts := domain.Artifacts{
		TablePath:   filepath.Join(dir, "search_results_"+suffix+format.Extension()),
		SummaryPath: filepath.Join(dir, "summary_"+suffix+".json"),
	}

	rows := Rows(report)
	var err error
	switch format {
	case domain.TableFormatCSV:
		err = writeCSV(artifacts.TablePath, rows)
	default:
		err = writeXLSX(artifacts.TablePath, rows)
	}
	if err != nil {
		return domain.Artifacts{}, fmt.Errorf("write results table: %w", err)
	}
	logger.Info("Results saved to %s (%d rows)", artifacts.TablePath, len(rows))

	if err := writeSummary(artifacts.SummaryPath, report); err != nil {
		return domain.Artifacts{}, fmt.Errorf("write summary: %w", err)
	}
	logger.Info("Summary saved to %s", artifacts.SummaryPath)

	return artifacts, nil
}

// Rows flattens the report into table rows, one per match result.
func Rows(report *domain.Report) [][]string {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		rows = append(rows, []string{filepath.Base(r.Path), r.Path, r.Keyword, r.StatusLabel()})
	}
	return rows
}

func artifactSuffix(report *domain.Report) string {
	started := report.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	runID := strings.ReplaceAll(report.RunID, "-", "")
	if len(runID) < 8 {
		runID = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	return started.Format(stampLayout) + "_" + runID[:8]
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(1, 1, 30); err != nil {
		return err
	}
	if err := sw.SetColWidth(2, 2, 60); err != nil {
		return err
	}
	if err := sw.SetColWidth(3, 4, 20); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toAny(Header), excelize.RowOpts{StyleID: bold}); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toAny(row)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func writeCSV(path string, rows [][]string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// summaryDocument is the JSON layout of the summary artifact.
type summaryDocument struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	InputPath  string   `json:"input_path"`
	OutputPath string   `json:"output_path"`
	RulesPath  string   `json:"rules_path"`
	Keywords   []string `json:"keywords"`

	ProcessedFilesCount int      `json:"processed_files_count"`
	MatchedFilesCount   int      `json:"matched_files_count"`
	UnmatchedFilesCount int      `json:"unmatched_files_count"`
	ProcessedFiles      []string `json:"processed_files"`
	MatchedFiles        []string `json:"matched_files"`
	UnmatchedFiles      []string `json:"unmatched_files"`

	FileWordCounts     map[string]domain.FileSummary `json:"file_word_counts"`
	ExtractionFailures map[string]string             `json:"extraction_failures"`
	ExtractionMethods  map[string]string             `json:"extraction_methods"`
}

func newSummaryDocument(report *domain.Report) summaryDocument {
	return summaryDocument{
		RunID:               report.RunID,
		StartedAt:           report.StartedAt,
		FinishedAt:          report.FinishedAt,
		InputPath:           report.InputPath,
		OutputPath:          report.OutputPath,
		RulesPath:           report.RulesPath,
		Keywords:            nonNil(report.Keywords),
		ProcessedFilesCount: len(report.Processed),
		MatchedFilesCount:   len(report.Matched),
		UnmatchedFilesCount: len(report.Unmatched),
		ProcessedFiles:      nonNil(report.Processed),
		MatchedFiles:        nonNil(report.Matched),
		UnmatchedFiles:      nonNil(report.Unmatched),
		FileWordCounts:      nonNilMap(report.Summaries),
		ExtractionFailures:  nonNilMap(report.Failures),
		ExtractionMethods:   nonNilMap(report.Methods),
	}
}

func writeSummary(path string, report *domain.Report) error {
	data, err := json.MarshalIndent(newSummaryDocument(report), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
