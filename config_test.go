package vlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vlist.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		path := writeConfig(t, `
fixed_row_height = 44
margin = 2
locator = "linear"
scroll_step = 3
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Config{FixedRowHeight: 44, Margin: 2, Locator: "linear", ScrollStep: 3}, cfg)
	})

	t.Run("DefaultsFillGaps", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "margin = 1\n"))
		require.NoError(t, err)
		want := DefaultConfig()
		want.Margin = 1
		assert.Equal(t, want, cfg)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "row_height = 3\n"))
		assert.ErrorContains(t, err, "row_height")
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, body := range []string{
			"fixed_row_height = 0\n",
			"margin = -1\n",
			"scroll_step = 0\n",
			`locator = "bogus"` + "\n",
		} {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err, body)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "margin = \n"))
		assert.Error(t, err)
	})
}

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
