// Package mbox extracts the plain-text bodies of every message in an
// mbox mailbox.
package mbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-mbox"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/eml"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "mbox"

// Extractor handles mbox mailboxes.
type Extractor struct{}

// New creates a new mbox extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".mbox"}
}

// Extract joins the plain-text body of each message with newlines.
// Messages that fail to parse or have no plain-text part are skipped.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	reader := mbox.NewReader(bytes.NewReader(data))
	var bodies []string
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return domain.Failed(Method, err)
		}

		msg, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Failed(Method, fmt.Errorf("%w: mbox: %w", domain.ErrInvalidInput, err))
		}
		count++

		body, found, err := eml.PlainText(msg)
		if err != nil {
			logger.Warn("Skipping message %d in %s: %v", count, doc.Path, err)
			continue
		}
		if found {
			bodies = append(bodies, body)
		}
	}

	if len(bodies) == 0 {
		logger.Warn("No plain-text message bodies in %s (%d messages)", doc.Path, count)
		return domain.NoText(Method, fmt.Sprintf("no text/plain part in %d messages", count))
	}

	logger.Info("Text extracted from %d of %d messages in %s", len(bodies), count, doc.Path)
	return domain.Extracted(Method, strings.Join(bodies, "\n"))
}
