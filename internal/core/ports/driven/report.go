package driven

import (
	"context"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// ReportWriter serialises a finished report.
type ReportWriter interface {
	// Write emits the table and summary artifacts into dir.
	// Artifact names must not collide across runs.
	Write(ctx context.Context, report *domain.Report, format domain.TableFormat, dir string) (domain.Artifacts, error)
}
