package driven

import (
	"context"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// RulesSource loads the keyword set from a rules table.
type RulesSource interface {
	// Load reads the keywords column of the table at path.
	// Returns an error wrapping domain.ErrRulesUnreadable on failure.
	Load(ctx context.Context, path string) (domain.KeywordSet, error)
}
