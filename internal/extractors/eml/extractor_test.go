package eml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
)

func writeEML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message.eml")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(content, "\n", "\r\n")), 0o600))
	return path
}

func TestNew(t *testing.T) {
	e := New()
	assert.Equal(t, "eml", e.Name())
	assert.Equal(t, []string{".eml"}, e.Extensions())
}

func TestExtract_SimplePlainText(t *testing.T) {
	path := writeEML(t, `From: alice@example.com
To: bob@example.com
Subject: Status
Content-Type: text/plain; charset=utf-8

The invoice was approved.
`)

	out := New().Extract(context.Background(), domain.NewDocument(path))

	require.True(t, out.OK(), out.Reason)
	assert.Contains(t, out.Text, "The invoice was approved.")
	assert.NotContains(t, out.Text, "Subject")
}

func TestExtract_MultipartPicksFirstPlainPart(t *testing.T) {
	path := writeEML(t, `From: alice@example.com
Subject: Report
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/html; charset=utf-8

<p>HTML only words</p>
--b1
Content-Type: text/plain; charset=utf-8

first plain body
--b1
Content-Type: text/plain; charset=utf-8

second plain body
--b1--
`)

	out := New().Extract(context.Background(), domain.NewDocument(path))

	require.True(t, out.OK(), out.Reason)
	assert.Contains(t, out.Text, "first plain body")
	assert.NotContains(t, out.Text, "HTML only words")
}

func TestExtract_DecodesDeclaredCharset(t *testing.T) {
	path := writeEML(t, `From: alice@example.com
Subject: Charset
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="b2"

--b2
Content-Type: text/plain; charset=iso-8859-1
Content-Transfer-Encoding: quoted-printable

Caf=E9 ouvert
--b2--
`)

	out := New().Extract(context.Background(), domain.NewDocument(path))

	require.True(t, out.OK(), out.Reason)
	assert.Contains(t, out.Text, "Café ouvert")
}

func TestExtract_NoPlainTextPart(t *testing.T) {
	path := writeEML(t, `From: alice@example.com
Subject: HTML only
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="b3"

--b3
Content-Type: text/html; charset=utf-8

<p>hello</p>
--b3--
`)

	out := New().Extract(context.Background(), domain.NewDocument(path))

	assert.Equal(t, domain.StatusNoText, out.Status)
	assert.Equal(t, domain.SentinelText, out.Text)
	assert.Equal(t, "no text/plain part", out.Reason)
}

func TestExtract_FileNotFound(t *testing.T) {
	out := New().Extract(context.Background(), domain.NewDocument("/missing/mail.eml"))
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "file not found")
}

func TestPlainText_Reader(t *testing.T) {
	body, found, err := PlainText(strings.NewReader("Subject: x\r\nContent-Type: text/plain\r\n\r\nhello\r\n"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, body, "hello")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
