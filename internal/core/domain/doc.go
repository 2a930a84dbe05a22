// Package domain defines the core business entities for kwscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A file discovered under the input directory
//   - ExtractedText: The outcome of running a capability over a document
//   - KeywordSet: The ordered, de-duplicated search terms
//   - MatchResult and FileSummary: Per-file keyword outcomes
//   - Report: The aggregate state written as the run's artifacts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
