// Package msg extracts the plain-text body of Outlook .msg files.
//
// A .msg file is an OLE compound file. The message body lives in a
// top-level property stream, either as UTF-16LE (PT_UNICODE) or as an
// 8-bit codepage string (PT_STRING8).
package msg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "msg"

const (
	bodyUnicode = "__substg1.0_1000001F"
	bodyString8 = "__substg1.0_1000001E"
)

// Storages holding recipient, attachment and embedded message properties.
var nestedPrefixes = []string{"__recip_", "__attach_", "__nameid_", "__substg1.0_3701000D"}

// Extractor handles Outlook MSG documents.
type Extractor struct{}

// New creates a new MSG extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".msg"}
}

// Extract reads the message body property.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	streams, err := readStreams(data)
	if err != nil {
		return domain.Failed(Method, err)
	}

	body, found, err := selectBody(streams)
	if err != nil {
		return domain.Failed(Method, err)
	}
	if !found {
		logger.Warn("No body property in %s", doc.Path)
		return domain.NoText(Method, "no message body")
	}

	logger.Info("Text extracted from MSG: %s", doc.Path)
	return domain.Extracted(Method, body)
}

// stream is a property stream read from the compound file.
type stream struct {
	name string
	path []string
	data []byte
}

func readStreams(data []byte) ([]stream, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a compound file: %w", domain.ErrInvalidInput, err)
	}
	return collectStreams(doc.Next)
}

// collectStreams walks directory entries until io.EOF, keeping the body
// property streams. Any other walk error fails the read.
func collectStreams(next func() (*mscfb.File, error)) ([]stream, error) {
	var streams []stream
	for {
		entry, err := next()
		if errors.Is(err, io.EOF) {
			return streams, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: compound file: %w", domain.ErrInvalidInput, err)
		}
		if entry.Name != bodyUnicode && entry.Name != bodyString8 {
			continue
		}
		content, err := io.ReadAll(entry)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name, err)
		}
		streams = append(streams, stream{name: entry.Name, path: entry.Path, data: content})
	}
}

// selectBody prefers the Unicode body over the 8-bit one and ignores
// streams inside nested storages.
func selectBody(streams []stream) (string, bool, error) {
	var unicodeBody, string8Body []byte
	var haveUnicode, haveString8 bool

	for _, s := range streams {
		if nested(s.path) {
			continue
		}
		switch s.name {
		case bodyUnicode:
			if !haveUnicode {
				unicodeBody, haveUnicode = s.data, true
			}
		case bodyString8:
			if !haveString8 {
				string8Body, haveString8 = s.data, true
			}
		}
	}

	switch {
	case haveUnicode:
		text, err := decodeUTF16(unicodeBody)
		return text, err == nil, err
	case haveString8:
		text, err := decodeString8(string8Body)
		return text, err == nil, err
	default:
		return "", false, nil
	}
}

func nested(path []string) bool {
	for _, storage := range path {
		for _, prefix := range nestedPrefixes {
			if strings.HasPrefix(storage, prefix) {
				return true
			}
		}
	}
	return false
}

func decodeUTF16(data []byte) (string, error) {
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode unicode body: %w", err)
	}
	return strings.TrimRight(string(decoded), "\x00"), nil
}

func decodeString8(data []byte) (string, error) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode string8 body: %w", err)
	}
	return strings.TrimRight(string(decoded), "\x00"), nil
}
