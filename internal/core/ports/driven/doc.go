// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Converts one document format into flat text
//   - Dispatcher: Selects the extractor for a path
//   - FileLister: Enumerates documents under the input directory
//   - RulesSource: Loads the keyword set
//   - ReportWriter: Writes the table and summary artifacts
//
// # Optional Interfaces
//
//   - CommandRunner: Runs external extraction tools (pdftotext)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
