// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hansard",
		Usage: "Explore parliamentary speeches by topic, year, party and speaker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"HANSARD_CONFIG"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the JSON explore API",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides server.addr)",
					},
					&cli.IntFlag{
						Name:    "port",
						Usage:   "Listen port on all interfaces (overrides --addr)",
						EnvVars: []string{"PORT"},
					},
				),
			},
			{
				Name:   "explore",
				Usage:  "Run one explore request and print the result as JSON",
				Action: exploreCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free text to rank topics against",
						Value:   "schools",
					},
					&cli.StringFlag{
						Name:  "topic",
						Usage: "Topic id to filter on (empty for any)",
						Value: "0",
					},
					&cli.StringFlag{
						Name:  "year",
						Usage: "Year to filter on",
						Value: "2023",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Speaker name to filter on (empty for any)",
						Value: "Rishi Sunak",
					},
					&cli.StringFlag{
						Name:  "party",
						Usage: "Party to filter on",
						Value: "Conservative",
					},
				),
			},
			{
				Name:   "topics",
				Usage:  "Rank catalog topics against free text",
				Action: topicsCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free text to rank topics against",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of topics to return",
						Value:   5,
					},
				),
			},
			{
				Name:   "names",
				Usage:  "Fuzzy match a speaker name against the stored speakers",
				Action: namesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Name to match",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "database-url",
						Usage: "SQLite path or postgres:// URL (overrides DATABASE_URL)",
					},
					&cli.StringFlag{
						Name:  "table",
						Usage: "Speech table name (overrides HANSARD_TABLE)",
					},
					&cli.IntFlag{
						Name:  "high-threshold",
						Usage: "Score at or above which matches are preferred",
						Value: 90,
					},
					&cli.IntFlag{
						Name:  "low-threshold",
						Usage: "Fallback score threshold",
						Value: 70,
					},
				},
			},
			{
				Name:   "build-catalog",
				Usage:  "Embed topic keywords into a catalog artifact",
				Action: buildCatalogCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "YAML list of {topic_id, keywords}",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Catalog JSON file to write",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of topics to embed per request",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Load a CSV of speeches into a SQLite database",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "CSV file with scraped_name, proc_party, text, year, person_url, topic_id columns",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "SQLite database file",
						Value:   "hansard.db",
					},
					&cli.StringFlag{
						Name:  "table",
						Usage: "Speech table name",
						Value: "hansard",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Rows per insert transaction",
						Value: 1000,
					},
				},
			},
		},
	}
}

// serviceFlags are the config overrides shared by commands that build a Service.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "database-url",
			Usage: "SQLite path or postgres:// URL (overrides DATABASE_URL)",
		},
		&cli.StringFlag{
			Name:  "table",
			Usage: "Speech table name (overrides HANSARD_TABLE)",
		},
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "Topic catalog JSON file",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name; must match the catalog",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for the on-disk query embedding cache",
		},
		&cli.StringFlag{
			Name:  "name-mode",
			Usage: "Speaker name matching: exact or fuzzy",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
