// Package rules loads the keyword set from a CSV or Excel rules table.
package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/logger"
	"github.com/custodia-labs/kwscan/internal/tabular"
)

// Ensure Loader implements the interface.
var _ driven.RulesSource = (*Loader)(nil)

// KeywordsColumn is the header naming the keyword column.
const KeywordsColumn = "keywords"

// Loader reads keywords from the first sheet of a rules table.
type Loader struct{}

// NewLoader creates a new rules loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the keywords column. The header is located on the first
// row and matched case-insensitively. Blank and duplicate keywords are
// dropped; an empty column is a valid empty set.
func (l *Loader) Load(ctx context.Context, path string) (domain.KeywordSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.KeywordSet{}, err
	}

	logger.Info("Reading rules file: %s", path)
	sheets, err := tabular.ReadFile(path)
	if err != nil {
		return domain.KeywordSet{}, fmt.Errorf("%w: %s: %w", domain.ErrRulesUnreadable, path, err)
	}
	if len(sheets) == 0 || len(sheets[0].Rows) == 0 {
		return domain.KeywordSet{}, fmt.Errorf("%w: %s", domain.ErrMissingKeywordsColumn, path)
	}

	rows := sheets[0].Rows
	col := -1
	for i, cell := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(cell.Value), KeywordsColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return domain.KeywordSet{}, fmt.Errorf("%w: %s", domain.ErrMissingKeywordsColumn, path)
	}

	terms := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col < len(row) {
			terms = append(terms, row[col].Value)
		}
	}

	keywords := domain.NewKeywordSet(terms...)
	logger.Info("Loaded %d keywords from %s", keywords.Len(), path)
	if dropped := len(terms) - keywords.Len(); dropped > 0 {
		logger.Debug("Dropped %d blank or duplicate keywords", dropped)
	}
	return keywords, nil
}
