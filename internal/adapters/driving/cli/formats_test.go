package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatsCmd_Use(t *testing.T) {
	assert.Equal(t, "formats", formatsCmd.Use)
}

func TestFormatsCmd_ListsExtensions(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "formats")

	require.NoError(t, err)
	assert.Contains(t, out, "Supported formats")
	assert.Contains(t, out, ".csv .xls .xlsx")
	assert.Less(t, strings.Index(out, "pdf"), strings.Index(out, "spreadsheet"))
}

func TestFormatsCmd_NotConfigured(t *testing.T) {
	setupCLITest(t)
	cliConfig = nil

	_, err := execute(t, "formats")

	assert.Error(t, err)
}
