// Package docx extracts text from word-processing documents.
package docx

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/ooxml"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "docx"

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract returns all body paragraph text followed by all table text.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	reader, err := ooxml.Open(data)
	if err != nil {
		return domain.Failed(Method, err)
	}

	content, err := ooxml.ReadPart(reader, "word/document.xml")
	if err != nil {
		return domain.Failed(Method, err)
	}

	text, err := parseDocumentXML(content)
	if err != nil {
		return domain.Failed(Method, err)
	}

	logger.Info("Text extracted from DOCX: %s", doc.Path)
	return domain.Extracted(Method, text)
}

// documentXML represents the structure of word/document.xml.
// Only body-level paragraphs and tables are read.
type documentXML struct {
	Body struct {
		Paragraphs []ooxml.Text `xml:"p"`
		Tables     []table      `xml:"tbl"`
	} `xml:"body"`
}

type table struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []ooxml.Text `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// parseDocumentXML renders paragraphs newline-joined, then every table
// row-major with cells space-joined and rows newline-joined.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: word/document.xml: %w", domain.ErrInvalidInput, err)
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		lines = append(lines, para.String())
	}

	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, ooxml.Join(cell.Paragraphs, "\n"))
			}
			lines = append(lines, strings.Join(cells, " "))
		}
	}

	return strings.Join(lines, "\n"), nil
}
