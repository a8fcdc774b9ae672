package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "purgeshift.yaml", `
mask: "01111"
seed: 42
pause: false
shift_w: true
format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "01111", cfg.Mask)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	require.NotNil(t, cfg.Pause)
	assert.False(t, *cfg.Pause)
	require.NotNil(t, cfg.ShiftW)
	assert.True(t, *cfg.ShiftW)
	assert.Equal(t, "json", cfg.Format)
	assert.Nil(t, cfg.Verbose)
}

func TestLoad_CUE(t *testing.T) {
	path := writeConfig(t, "purgeshift.cue", `
mask:    "10001"
verbose: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10001", cfg.Mask)
	require.NotNil(t, cfg.Verbose)
	assert.True(t, *cfg.Verbose)
	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.Pause)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "purgeshift.toml", `
mask = "01110"
seed = 7
shift_w = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "01110", cfg.Mask)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(7), *cfg.Seed)
	require.NotNil(t, cfg.ShiftW)
	assert.False(t, *cfg.ShiftW)
	assert.Nil(t, cfg.Pause)
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := writeConfig(t, "empty.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown key", file: "c.yaml", content: "slot: 2\n"},
		{name: "short mask", file: "c.yaml", content: "mask: \"0102\"\n"},
		{name: "all zero mask", file: "c.yaml", content: "mask: \"00000\"\n"},
		{name: "negative seed", file: "c.yaml", content: "seed: -1\n"},
		{name: "bad format", file: "c.yaml", content: "format: xml\n"},
		{name: "wrong type", file: "c.yaml", content: "pause: \"no\"\n"},
		{name: "malformed yaml", file: "c.yaml", content: "mask: [\n"},
		{name: "cue unknown key", file: "c.cue", content: "offset: 46\n"},
		{name: "cue syntax error", file: "c.cue", content: "mask: \n"},
		{name: "toml unknown key", file: "c.toml", content: "slot = 2\n"},
		{name: "malformed toml", file: "c.toml", content: "mask = \n"},
		{name: "unsupported extension", file: "c.json", content: "{\"mask\": \"11111\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, path, cfgErr.Path)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
