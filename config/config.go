package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/hansard/ai"
	"github.com/poiesic/hansard/explore"
	"github.com/poiesic/hansard/storage"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// DatabaseConfig locates the speech table.
type DatabaseConfig struct {
	// URL is a SQLite path or a postgres:// URL.
	URL          string        `yaml:"url"`
	Table        string        `yaml:"table"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// CatalogConfig locates the topic catalog artifact.
type CatalogConfig struct {
	Path string `yaml:"path"`
	TopN int    `yaml:"top_n"`
}

// EmbeddingConfig selects the embedding service.
type EmbeddingConfig struct {
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
	// CacheDir enables the persistent embedding cache when set.
	CacheDir string `yaml:"cache_dir"`
}

// SamplingConfig bounds the speeches returned per request.
type SamplingConfig struct {
	RowCap     int `yaml:"row_cap"`
	SampleSize int `yaml:"sample_size"`
}

// NamesConfig controls speaker name matching.
type NamesConfig struct {
	// Mode is "exact" or "fuzzy".
	Mode          string `yaml:"mode"`
	Limit         int    `yaml:"limit"`
	HighThreshold int    `yaml:"high_threshold"`
	LowThreshold  int    `yaml:"low_threshold"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the top-level application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Names     NamesConfig     `yaml:"names"`
	Server    ServerConfig    `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{
			URL:          "hansard.db",
			Table:        "hansard",
			QueryTimeout: 5 * time.Second,
		},
		Catalog: CatalogConfig{
			Path: "static/topics.json",
			TopN: 5,
		},
		Embedding: EmbeddingConfig{
			Host:      aiDefaults.EmbeddingHost,
			Model:     aiDefaults.EmbeddingModel,
			Dimension: aiDefaults.Dimension,
		},
		Sampling: SamplingConfig{
			RowCap:     100,
			SampleSize: 5,
		},
		Names: NamesConfig{
			Mode:          "exact",
			Limit:         100,
			HighThreshold: 90,
			LowThreshold:  70,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides the database settings from the environment:
// DATABASE_URL replaces the database URL, a set DYNO selects the
// "hansard_2" table, and HANSARD_TABLE names the table outright.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if url := getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if getenv("DYNO") != "" {
		c.Database.Table = "hansard_2"
	}
	if table := getenv("HANSARD_TABLE"); table != "" {
		c.Database.Table = table
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required"))
	}
	if !storage.ValidIdentifier(c.Database.Table) {
		errs = append(errs, fmt.Errorf("database.table %q is not a valid identifier", c.Database.Table))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("database.query_timeout must be positive"))
	}
	if c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.path is required"))
	}
	if c.Catalog.TopN <= 0 {
		errs = append(errs, errors.New("catalog.top_n must be positive"))
	}
	if c.Sampling.RowCap <= 0 || c.Sampling.SampleSize <= 0 {
		errs = append(errs, errors.New("sampling.row_cap and sampling.sample_size must be positive"))
	}
	if _, err := explore.ParseNameMode(c.Names.Mode); err != nil {
		errs = append(errs, fmt.Errorf("names.mode: %w", err))
	}
	if err := c.AI().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// AI returns the embedding settings as an ai.Config.
func (c *Config) AI() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithDimension(c.Embedding.Dimension),
		ai.WithCacheDir(c.Embedding.CacheDir),
	)
}
