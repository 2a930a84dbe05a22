package domain

import (
	"path/filepath"
	"strings"
)

// SentinelText is the fixed text returned when every extraction attempt
// for a document yields nothing.
const SentinelText = "No text extracted."

// Document is a file discovered under the input directory.
// It is immutable once created and read once by its extractor.
type Document struct {
	// Path is the file path as discovered by the lister.
	Path string

	// Name is the base name of Path.
	Name string

	// Ext is the lowercase extension including the leading dot.
	Ext string
}

// NewDocument builds a Document from a path.
func NewDocument(path string) Document {
	return Document{
		Path: path,
		Name: filepath.Base(path),
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
}

// ExtractionStatus describes how an extraction attempt ended.
type ExtractionStatus int

const (
	// StatusExtracted indicates usable text was produced.
	StatusExtracted ExtractionStatus = iota

	// StatusNoText indicates the document parsed but held no text.
	// The Text field carries SentinelText.
	StatusNoText

	// StatusFailed indicates an I/O or parser failure.
	StatusFailed

	// StatusSkipped indicates no extractor is registered for the format.
	StatusSkipped
)

// String returns the string representation.
func (s ExtractionStatus) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusNoText:
		return "no_text"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ExtractedText is the outcome of extracting one document.
// There is at most one per Document.
type ExtractedText struct {
	// Text is the flat text view. SentinelText when Status is StatusNoText.
	Text string

	// Status records how extraction ended.
	Status ExtractionStatus

	// Method names the strategy that produced Text, for auditability.
	Method string

	// Reason describes why extraction did not succeed.
	Reason string
}

// OK returns true if the outcome carries text that should be matched.
func (e ExtractedText) OK() bool {
	return e.Status == StatusExtracted
}

// Extracted builds a successful outcome.
func Extracted(method, text string) ExtractedText {
	return ExtractedText{Text: text, Status: StatusExtracted, Method: method}
}

// NoText builds the sentinel outcome.
func NoText(method, reason string) ExtractedText {
	return ExtractedText{Text: SentinelText, Status: StatusNoText, Method: method, Reason: reason}
}

// Failed builds a failure outcome from an error.
func Failed(method string, err error) ExtractedText {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return ExtractedText{Status: StatusFailed, Method: method, Reason: reason}
}

// Skipped builds the outcome for a document no extractor handles.
func Skipped(reason string) ExtractedText {
	return ExtractedText{Status: StatusSkipped, Reason: reason}
}
