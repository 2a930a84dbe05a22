// Package source holds helpers shared by every extractor: reading a
// document's bytes and converting parser panics into failure outcomes.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Read returns the document's bytes.
// Missing files produce an error wrapping domain.ErrFileNotFound.
func Read(ctx context.Context, doc domain.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, doc.Path)
		}
		return nil, fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return data, nil
}

// Open returns the document as an open file. The caller closes it.
func Open(ctx context.Context, doc domain.Document) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(doc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, doc.Path)
		}
		return nil, fmt.Errorf("open %s: %w", doc.Path, err)
	}
	return f, nil
}

// Guard runs fn and converts a panic into a failed outcome for method.
func Guard(method string, fn func() domain.ExtractedText) (out domain.ExtractedText) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.Failed(method, fmt.Errorf("%w: parser panic: %v", domain.ErrInvalidInput, r))
		}
	}()
	return fn()
}
