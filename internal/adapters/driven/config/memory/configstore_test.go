package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscan/internal/adapters/driven/config/file"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()

	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i64", int64(7)))
	require.NoError(t, store.Set("f", 3.0))
	require.NoError(t, store.Set("b", true))
	require.NoError(t, store.Set("list", []any{"a", 1, "b"}))

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, 7, store.GetInt("i64"))
	assert.Equal(t, 3, store.GetInt("f"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("list"))
	assert.Empty(t, store.GetString("missing"))
}

func TestOverlay_PrefersOwnValues(t *testing.T) {
	base, err := file.NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	require.NoError(t, base.Set("match.mode", "word"))
	require.NoError(t, base.Set("output.format", "csv"))

	overlay := NewOverlay(base)
	require.NoError(t, overlay.Set("match.mode", "substring"))

	assert.Equal(t, "substring", overlay.GetString("match.mode"))
	assert.Equal(t, "csv", overlay.GetString("output.format"))
	assert.Equal(t, "word", base.GetString("match.mode"))
	assert.Equal(t, base.Path(), overlay.Path())
}

func TestOverlay_SaveWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	base, err := file.NewConfigStore(path)
	require.NoError(t, err)

	overlay := NewOverlay(base)
	require.NoError(t, overlay.Set("scan.workers", 2))
	require.NoError(t, overlay.Save())

	reopened, err := file.NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.GetInt("scan.workers"))
}
