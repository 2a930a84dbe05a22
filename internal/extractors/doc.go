// Package extractors holds the format dispatcher and the built-in
// extraction capabilities.
//
// Each subpackage converts one document family into flat text. The
// Registry maps file extensions to those extractors; an extension with
// no extractor produces a skip decision rather than an error, so new
// formats are added by registering them without touching dispatch.
package extractors
