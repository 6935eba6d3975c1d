package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/fairdraw/internal/config"
)

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config.yaml", "config.toml"} {
		path := filepath.Join(t.TempDir(), "nested", name)

		var buf bytes.Buffer
		require.NoError(t, writeDefaultConfig(&buf, path, false))
		assert.Contains(t, buf.String(), "Config file created at "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# fairdraw configuration")

		cfg, err := config.Load(path)
		require.NoError(t, err, name)
		require.NoError(t, cfg.Validate(), name)
		want := config.Default()
		assert.Equal(t, want.Draw, cfg.Draw, name)
		assert.Equal(t, want.Audit, cfg.Audit, name)
		assert.Equal(t, want.Logging, cfg.Logging, name)
		assert.Equal(t, want.Cache, cfg.Cache, name)
		assert.Empty(t, cfg.Vectors, name)

		err = writeDefaultConfig(&buf, path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		require.NoError(t, writeDefaultConfig(&buf, path, true))
	}
}

func TestShowConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, config.Default(), config.FormatTOML))
	assert.Contains(t, buf.String(), "[draw]")

	buf.Reset()
	require.NoError(t, showConfig(&buf, config.Default(), config.FormatYAML))
	assert.Contains(t, buf.String(), "reducer: bigint")

	require.Error(t, showConfig(&buf, config.Default(), "ini"))
}

func TestDescribePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "built-in default config", describePath(""))
	assert.Equal(t, "fairdraw.yaml", describePath("fairdraw.yaml"))
}
