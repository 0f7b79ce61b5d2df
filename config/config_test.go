package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "hansard.db", cfg.Database.URL)
	assert.Equal(t, "hansard", cfg.Database.Table)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5, cfg.Catalog.TopN)
	assert.Equal(t, 100, cfg.Sampling.RowCap)
	assert.Equal(t, 5, cfg.Sampling.SampleSize)
	assert.Equal(t, "exact", cfg.Names.Mode)
	assert.Equal(t, 90, cfg.Names.HighThreshold)
	assert.Equal(t, 70, cfg.Names.LowThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hansard.yaml")
	src := `
database:
  url: postgres://hansard@localhost/hansard
  query_timeout: 2s
catalog:
  path: /data/topics.json
names:
  mode: fuzzy
  low_threshold: 60
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://hansard@localhost/hansard", cfg.Database.URL)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "/data/topics.json", cfg.Catalog.Path)
	assert.Equal(t, "fuzzy", cfg.Names.Mode)
	assert.Equal(t, 60, cfg.Names.LowThreshold)

	// untouched fields keep their defaults
	assert.Equal(t, "hansard", cfg.Database.Table)
	assert.Equal(t, 90, cfg.Names.HighThreshold)
	assert.Equal(t, 5, cfg.Sampling.SampleSize)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name      string
		vars      map[string]string
		wantURL   string
		wantTable string
	}{
		{"nothing set", nil, "hansard.db", "hansard"},
		{"database url", map[string]string{"DATABASE_URL": "postgres://x/y"}, "postgres://x/y", "hansard"},
		{"dyno", map[string]string{"DYNO": "web.1"}, "hansard.db", "hansard_2"},
		{"explicit table wins", map[string]string{"DYNO": "web.1", "HANSARD_TABLE": "speeches"}, "hansard.db", "speeches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyEnv(env(tt.vars))
			assert.Equal(t, tt.wantURL, cfg.Database.URL)
			assert.Equal(t, tt.wantTable, cfg.Database.Table)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Database.URL = "" }},
		{"bad table", func(c *Config) { c.Database.Table = "hansard; DROP" }},
		{"zero timeout", func(c *Config) { c.Database.QueryTimeout = 0 }},
		{"no catalog", func(c *Config) { c.Catalog.Path = "" }},
		{"zero top n", func(c *Config) { c.Catalog.TopN = 0 }},
		{"zero sample", func(c *Config) { c.Sampling.SampleSize = 0 }},
		{"bad name mode", func(c *Config) { c.Names.Mode = "soundex" }},
		{"no model", func(c *Config) { c.Embedding.Model = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestAI(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Host = "http://embed:11434"
	cfg.Embedding.CacheDir = "/tmp/cache"

	aiCfg := cfg.AI()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://embed:11434/v1", aiCfg.EmbeddingHost)
	assert.Equal(t, "all-minilm", aiCfg.EmbeddingModel)
	assert.Equal(t, "/tmp/cache", aiCfg.CacheDir)
}
