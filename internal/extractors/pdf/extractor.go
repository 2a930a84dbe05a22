// Package pdf extracts text from PDF documents through a chain of
// independent parsers. When every parser yields empty text the
// extractor returns the sentinel outcome; OCR is not attempted.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names.
const (
	Method          = "pdf"
	MethodTextLayer = "pdf-text-layer"
	MethodPDFToText = "pdftotext"
)

// attempt is one link in the fallback chain.
type attempt struct {
	name string
	run  func(ctx context.Context, doc domain.Document, data []byte) (string, error)
}

// Extractor handles PDF documents.
type Extractor struct {
	runner   driven.CommandRunner
	attempts []attempt
}

// New creates a PDF extractor that falls back to the system pdftotext.
func New() *Extractor {
	return NewWithRunner(&ExecRunner{})
}

// NewWithRunner creates a PDF extractor with a custom command runner
// for the pdftotext fallback.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	e := &Extractor{runner: runner}
	e.attempts = []attempt{
		{name: MethodTextLayer, run: textLayer},
		{name: MethodPDFToText, run: e.pdftotext},
	}
	return e
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract tries each parser in turn and returns the first non-blank text.
// A parser failure is logged and the chain continues.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	var failures []string
	for _, a := range e.attempts {
		text, err := a.run(ctx, doc, data)
		if err != nil {
			logger.Error("Error with %s on %s: %v", a.name, doc.Path, err)
			failures = append(failures, fmt.Sprintf("%s: %v", a.name, err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			logger.Info("Text extracted using %s: %s", a.name, doc.Path)
			return domain.Extracted(a.name, text)
		}
		logger.Debug("%s found no text in %s", a.name, doc.Path)
	}

	logger.Warn("No text found in %s; image-only PDFs are not OCRed", doc.Path)
	reason := "no text layer found"
	if len(failures) > 0 {
		reason += " (" + strings.Join(failures, "; ") + ")"
	}
	return domain.NoText(Method, reason)
}

// textLayer reads the embedded text layer. The parser panics on some
// malformed files, so the panic is converted into an error.
func textLayer(_ context.Context, _ domain.Document, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf parser panic: %v", domain.ErrInvalidInput, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	content, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// pdftotext runs the poppler tool against the file on disk.
func (e *Extractor) pdftotext(ctx context.Context, doc domain.Document, _ []byte) (string, error) {
	output, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", doc.Path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}
