// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiktersproj/wikters/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "xml", cfg.Reader)
	assert.Equal(t, []string{"English"}, cfg.Languages)
	assert.Equal(t, 0, cfg.Limit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "reader: strict\nlanguages:\n  - English\n  - Translingual\nlimit: 500\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.Reader)
	assert.Equal(t, []string{"English", "Translingual"}, cfg.Languages)
	assert.Equal(t, 500, cfg.Limit)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reader: lines\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WIKTERS_READER", "strict")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Reader)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "bad reader", mutate: func(c *config.Config) { c.Reader = "sax" }, wantErr: "reader"},
		{name: "bad log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "negative limit", mutate: func(c *config.Config) { c.Limit = -1 }, wantErr: "limit"},
		{name: "no languages", mutate: func(c *config.Config) { c.Languages = nil }, wantErr: "language"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Reader: "xml", Languages: []string{"English"}, LogLevel: "info"}
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
