// Package eml extracts the plain-text body of MIME email messages.
package eml

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jhillyerd/enmime"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "eml"

// Extractor handles EML (email) documents.
type Extractor struct{}

// New creates a new EML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".eml"}
}

// Extract returns the first text/plain part decoded to UTF-8.
// A message without a plain-text part yields the sentinel outcome.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	body, found, err := PlainText(bytes.NewReader(data))
	if err != nil {
		return domain.Failed(Method, err)
	}
	if !found {
		logger.Warn("No plain-text part in %s", doc.Path)
		return domain.NoText(Method, "no text/plain part")
	}

	logger.Info("Text extracted from EML: %s", doc.Path)
	return domain.Extracted(Method, body)
}

// PlainText parses one MIME message and returns its first plain-text body.
// Parts are searched depth-first in declaration order; attachments are
// ignored. found is false when no such part exists.
func PlainText(r io.Reader) (body string, found bool, err error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return "", false, fmt.Errorf("%w: parse message: %w", domain.ErrInvalidInput, err)
	}

	if part := firstPlainPart(env.Root); part != nil {
		return string(part.Content), true, nil
	}

	// A root part without a declared type is plain text by default.
	if env.Root != nil && env.Root.ContentType == "" && env.Root.FirstChild == nil {
		return env.Text, true, nil
	}
	return "", false, nil
}

func firstPlainPart(part *enmime.Part) *enmime.Part {
	if part == nil {
		return nil
	}
	if part.ContentType == "text/plain" && part.Disposition != "attachment" {
		return part
	}
	for child := part.FirstChild; child != nil; child = child.NextSibling {
		if found := firstPlainPart(child); found != nil {
			return found
		}
	}
	return nil
}
