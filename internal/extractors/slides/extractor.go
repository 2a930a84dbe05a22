// Package slides extracts text from slide decks (PowerPoint Open XML).
package slides

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/ooxml"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names this extractor in extraction outcomes.
const Method = "pptx"

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Extractor handles slide decks.
type Extractor struct{}

// New creates a new slide deck extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
// Legacy binary .ppt files are routed here too and fail as invalid packages.
func (e *Extractor) Extensions() []string {
	return []string{".pptx", ".ppt"}
}

// Extract renders every slide as a labelled block of shape text
// followed by its table content.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(Method, err)
	}

	reader, err := ooxml.Open(data)
	if err != nil {
		return domain.Failed(Method, err)
	}

	parts := slideParts(reader)
	if len(parts) == 0 {
		return domain.Failed(Method, fmt.Errorf("%w: no slides in package", domain.ErrInvalidInput))
	}

	var b strings.Builder
	for i, part := range parts {
		content, err := ooxml.ReadPart(reader, part)
		if err != nil {
			return domain.Failed(Method, err)
		}
		block, err := renderSlide(i+1, content)
		if err != nil {
			return domain.Failed(Method, fmt.Errorf("%s: %w", part, err))
		}
		b.WriteString(block)
	}

	logger.Info("Text extracted from PPT: %s", doc.Path)
	return domain.Extracted(Method, b.String())
}

// slideParts returns slide part names in presentation order.
// The order comes from presentation.xml; when that cannot be resolved
// the numeric suffix of each slide part is used instead.
func slideParts(reader *zip.Reader) []string {
	if ordered := presentationOrder(reader); len(ordered) > 0 {
		return ordered
	}

	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, file := range reader.File {
		m := slidePartPattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{name: file.Name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out
}

func presentationOrder(reader *zip.Reader) []string {
	content, err := ooxml.ReadPart(reader, "ppt/presentation.xml")
	if err != nil {
		return nil
	}
	relsContent, err := ooxml.ReadPart(reader, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil
	}
	rels, err := ooxml.Relationships(relsContent)
	if err != nil {
		return nil
	}

	var pres struct {
		Slides []struct {
			RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := xml.Unmarshal(content, &pres); err != nil {
		return nil
	}

	out := make([]string, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		target, ok := rels[s.RelID]
		if !ok {
			return nil
		}
		if strings.HasPrefix(target, "/") {
			out = append(out, strings.TrimPrefix(target, "/"))
			continue
		}
		out = append(out, path.Join("ppt", target))
	}
	return out
}

// renderSlide formats one slide: a 1-based label, one line per shape,
// and a table block with cells space-joined and rows newline-joined.
func renderSlide(number int, content []byte) (string, error) {
	var slide struct {
		Tree shapeTree `xml:"cSld>spTree"`
	}
	if err := xml.Unmarshal(content, &slide); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Slide %d:\n", number)
	for _, text := range slide.Tree.Texts {
		b.WriteString(text)
		b.WriteString("\n")
	}

	if len(slide.Tree.Tables) > 0 {
		b.WriteString("Table Content:\n")
		for _, rows := range slide.Tree.Tables {
			for _, row := range rows {
				b.WriteString(strings.Join(row, " "))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	return b.String(), nil
}

// shapeTree collects shape text and table cells in document order,
// descending into group shapes.
type shapeTree struct {
	Texts  []string
	Tables [][][]string
}

type shape struct {
	Paragraphs []ooxml.Text `xml:"txBody>p"`
}

type graphicFrame struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []ooxml.Text `xml:"txBody>p"`
		} `xml:"tc"`
	} `xml:"graphic>graphicData>tbl>tr"`
}

// UnmarshalXML implements xml.Unmarshaler.
func (s *shapeTree) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if err := s.decodeChild(d, el); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *shapeTree) decodeChild(d *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "sp":
		var sp shape
		if err := d.DecodeElement(&sp, &el); err != nil {
			return err
		}
		if len(sp.Paragraphs) > 0 {
			s.Texts = append(s.Texts, ooxml.Join(sp.Paragraphs, "\n"))
		}
	case "graphicFrame":
		var frame graphicFrame
		if err := d.DecodeElement(&frame, &el); err != nil {
			return err
		}
		if len(frame.Rows) == 0 {
			return nil
		}
		rows := make([][]string, 0, len(frame.Rows))
		for _, row := range frame.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, strings.TrimSpace(ooxml.Join(cell.Paragraphs, "\n")))
			}
			rows = append(rows, cells)
		}
		s.Tables = append(s.Tables, rows)
	case "grpSp":
		var group shapeTree
		if err := d.DecodeElement(&group, &el); err != nil {
			return err
		}
		s.Texts = append(s.Texts, group.Texts...)
		s.Tables = append(s.Tables, group.Tables...)
	default:
		return d.Skip()
	}
	return nil
}
