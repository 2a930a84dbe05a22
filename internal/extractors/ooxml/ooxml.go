// Package ooxml decodes the text runs shared by Office Open XML formats
// (word-processing documents and slide decks).
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

// Text collects the visible text of an element in document order.
// Text nodes (w:t, a:t) are concatenated; tab elements become '\t'
// and break elements become '\n'.
type Text string

// UnmarshalXML implements xml.Unmarshaler.
func (t *Text) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var b strings.Builder
	depth := 0
	inText := false

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if depth == 0 {
				*t = Text(b.String())
				return nil
			}
			depth--
			if el.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
}

// String returns the collected text.
func (t Text) String() string {
	return string(t)
}

// Join concatenates texts with sep.
func Join(texts []Text, sep string) string {
	parts := make([]string, len(texts))
	for i, t := range texts {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}

// Open reads data as a zip package.
func Open(data []byte) (*zip.Reader, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not an OOXML package: %w", domain.ErrInvalidInput, err)
	}
	return reader, nil
}

// ReadPart returns the contents of the named part.
// Returns an error wrapping domain.ErrNotFound if the part is absent.
func ReadPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrInvalidInput, name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrInvalidInput, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: part %s", domain.ErrNotFound, name)
}

// Relationships maps relationship IDs to targets for a .rels part.
func Relationships(content []byte) (map[string]string, error) {
	var rels struct {
		Items []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("%w: relationships: %w", domain.ErrInvalidInput, err)
	}

	out := make(map[string]string, len(rels.Items))
	for _, item := range rels.Items {
		out[item.ID] = item.Target
	}
	return out, nil
}
