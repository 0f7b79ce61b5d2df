package main

import (
	"os"

	"github.com/poiesic/hansard/config"
	"github.com/urfave/cli/v2"
)

// loadConfig layers the config file, the environment and any flags the
// command line set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"database-url", &cfg.Database.URL},
		{"table", &cfg.Database.Table},
		{"catalog", &cfg.Catalog.Path},
		{"embedding-host", &cfg.Embedding.Host},
		{"embedding-model", &cfg.Embedding.Model},
		{"cache-dir", &cfg.Embedding.CacheDir},
		{"name-mode", &cfg.Names.Mode},
		{"addr", &cfg.Server.Addr},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag) {
			*o.dst = c.String(o.flag)
		}
	}
	return cfg, nil
}
