package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscan/internal/core/domain"
)

func TestText_UnmarshalXML(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		expected string
	}{
		{
			name:     "single run",
			xml:      `<p><r><t>Hello</t></r></p>`,
			expected: "Hello",
		},
		{
			name:     "multiple runs",
			xml:      `<p><r><t>Hello </t></r><r><t>World</t></r></p>`,
			expected: "Hello World",
		},
		{
			name:     "hyperlink runs kept in order",
			xml:      `<p><r><t>See </t></r><hyperlink><r><t>here</t></r></hyperlink><r><t>.</t></r></p>`,
			expected: "See here.",
		},
		{
			name:     "tab and break",
			xml:      `<p><r><t>a</t><tab/><t>b</t><br/><t>c</t></r></p>`,
			expected: "a\tb\nc",
		},
		{
			name:     "ignores non-text chardata",
			xml:      `<p><pPr><pStyle>Heading1</pStyle></pPr><r><instrText>PAGE</instrText><t>x</t></r></p>`,
			expected: "x",
		},
		{
			name:     "empty paragraph",
			xml:      `<p/>`,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var text Text
			require.NoError(t, xml.Unmarshal([]byte(tc.xml), &text))
			assert.Equal(t, tc.expected, text.String())
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\nb", Join([]Text{"a", "b"}, "\n"))
	assert.Equal(t, "", Join(nil, " "))
}

func TestOpenAndReadPart(t *testing.T) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, _ := w.Create("word/document.xml")
	f.Write([]byte("<doc/>"))
	require.NoError(t, w.Close())

	reader, err := Open(buf.Bytes())
	require.NoError(t, err)

	content, err := ReadPart(reader, "word/document.xml")
	require.NoError(t, err)
	assert.Equal(t, "<doc/>", string(content))

	_, err = ReadPart(reader, "missing.xml")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_InvalidZip(t *testing.T) {
	_, err := Open([]byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRelationships(t *testing.T) {
	rels := `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId2" Type="slide" Target="slides/slide1.xml"/>
<Relationship Id="rId3" Type="slide" Target="slides/slide2.xml"/>
</Relationships>`

	out, err := Relationships([]byte(rels))
	require.NoError(t, err)
	assert.Equal(t, "slides/slide1.xml", out["rId2"])
	assert.Equal(t, "slides/slide2.xml", out["rId3"])

	_, err = Relationships([]byte("<broken"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
