// Package services implements the driving port interfaces.
// Services contain the core scan logic and orchestrate calls to
// driven ports (adapters).
//
// ScanService fans documents out over a bounded worker pool. Each worker
// dispatches, extracts and matches one document, then hands the outcome
// to the Aggregator, which is the only shared mutable state. Artifacts
// are written once every worker has returned. The order in which
// documents are recorded is not guaranteed; the finalized report is
// sorted so its content does not depend on it.
package services
