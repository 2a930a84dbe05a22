package extractors

import (
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/docx"
	"github.com/custodia-labs/kwscan/internal/extractors/eml"
	"github.com/custodia-labs/kwscan/internal/extractors/mbox"
	"github.com/custodia-labs/kwscan/internal/extractors/msg"
	"github.com/custodia-labs/kwscan/internal/extractors/pdf"
	"github.com/custodia-labs/kwscan/internal/extractors/plaintext"
	"github.com/custodia-labs/kwscan/internal/extractors/slides"
	"github.com/custodia-labs/kwscan/internal/extractors/spreadsheet"
	"github.com/custodia-labs/kwscan/internal/extractors/structured"
)

// RegisterDefaults registers all built-in extractors with the registry.
// runner executes the pdftotext fallback; nil uses the system shell-out.
func RegisterDefaults(r *Registry, runner driven.CommandRunner) {
	if runner == nil {
		r.Register(pdf.New())
	} else {
		r.Register(pdf.NewWithRunner(runner))
	}
	r.Register(slides.New())
	r.Register(docx.New())
	r.Register(spreadsheet.New())
	r.Register(plaintext.New())
	r.Register(structured.New())
	r.Register(eml.New())
	r.Register(msg.New())
	r.Register(mbox.New())
}

// NewDefaultRegistry returns a registry with every built-in extractor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r, nil)
	return r
}
