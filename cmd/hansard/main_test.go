package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/hansard/config"
	"github.com/poiesic/hansard/storage"
	"github.com/poiesic/hansard/storage/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const speechCSV = `scraped_name,proc_party,text,year,person_url,topic_id
Rishi Sunak,Conservative,"Schools are improving, and standards rise.",2023,https://example.org/rs,0
Keir Starmer,Labour,Teachers deserve more.,2023,https://example.org/ks,0
Jane Smith,Labour,Hospitals are full.,2019,https://example.org/js,1
`

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && flag.Names()[0] == name {
			return f
		}
	}
	var zero T
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	return zero
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"hansard"}, args...))
	return out.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DATABASE_URL", "DYNO", "HANSARD_TABLE", "HANSARD_CONFIG", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestCommandsRegistered(t *testing.T) {
	app := newApp()
	for _, name := range []string{"serve", "explore", "topics", "names", "build-catalog", "seed"} {
		assert.NotNil(t, findCommand(t, app, name))
	}
}

func TestCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("explore defaults match the default request", func(t *testing.T) {
		cmd := findCommand(t, app, "explore")
		assert.Equal(t, "schools", findFlag[*cli.StringFlag](t, cmd, "query").Value)
		assert.Equal(t, "0", findFlag[*cli.StringFlag](t, cmd, "topic").Value)
		assert.Equal(t, "2023", findFlag[*cli.StringFlag](t, cmd, "year").Value)
		assert.Equal(t, "Rishi Sunak", findFlag[*cli.StringFlag](t, cmd, "name").Value)
		assert.Equal(t, "Conservative", findFlag[*cli.StringFlag](t, cmd, "party").Value)
	})

	t.Run("topics query is required", func(t *testing.T) {
		cmd := findCommand(t, app, "topics")
		assert.True(t, findFlag[*cli.StringFlag](t, cmd, "query").Required)
		assert.Equal(t, 5, findFlag[*cli.IntFlag](t, cmd, "top").Value)
	})

	t.Run("build-catalog embedding-model has no default", func(t *testing.T) {
		cmd := findCommand(t, app, "build-catalog")
		model := findFlag[*cli.StringFlag](t, cmd, "embedding-model")
		assert.Empty(t, model.Value)
		assert.True(t, model.Required)
		assert.Empty(t, model.EnvVars)
		assert.Equal(t, "http://localhost:11434/v1", findFlag[*cli.StringFlag](t, cmd, "embedding-host").Value)
		assert.Equal(t, 3, findFlag[*cli.IntFlag](t, cmd, "max-retries").Value)
	})

	t.Run("seed defaults", func(t *testing.T) {
		cmd := findCommand(t, app, "seed")
		assert.Equal(t, "hansard.db", findFlag[*cli.StringFlag](t, cmd, "db").Value)
		assert.Equal(t, "hansard", findFlag[*cli.StringFlag](t, cmd, "table").Value)
	})

	t.Run("serve port reads PORT", func(t *testing.T) {
		cmd := findCommand(t, app, "serve")
		assert.Equal(t, []string{"PORT"}, findFlag[*cli.IntFlag](t, cmd, "port").EnvVars)
	})
}

func TestRequiredFlags(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"topics"}, "query"},
		{[]string{"names"}, "query"},
		{[]string{"build-catalog", "--in", "topics.yaml", "--out", "topics.json"}, "embedding-model"},
		{[]string{"build-catalog", "--embedding-model", "m"}, "in"},
		{[]string{"seed"}, "csv"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeedAndNames(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "speeches.csv")
	dbPath := filepath.Join(dir, "hansard.db")
	require.NoError(t, os.WriteFile(csvPath, []byte(speechCSV), 0644))

	out, err := runApp(t, "seed", "--csv", csvPath, "--db", dbPath, "--batch-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Inserted 3 speeches into hansard")

	store, err := sqlstore.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	rows, err := store.QuerySpeeches(context.Background(), "hansard", storage.Filters{
		storage.BuildFilter("scraped_name", "AND", "Rishi Sunak", ""),
	}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Schools are improving, and standards rise.", rows[0].Text)
	assert.Equal(t, 2023, rows[0].Year)

	out, err = runApp(t, "names", "-q", "Rishi Sunk", "--database-url", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "95\tRishi Sunak\n", out)

	out, err = runApp(t, "names", "-q", "Zzyzx Qwerty", "--database-url", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no matching speakers")
}

func TestSpeechesFromCSV_Errors(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		_, err := speechesFromCSV(strings.NewReader("scraped_name,proc_party,text,year,person_url\n"))
		assert.ErrorIs(t, err, errMissingColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := speechesFromCSV(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("bad year stops iteration", func(t *testing.T) {
		src := "year,topic_id,scraped_name,proc_party,text,person_url\n" +
			"2023,0,A,B,C,D\n" +
			"twenty,0,A,B,C,D\n" +
			"2024,0,A,B,C,D\n"
		source, err := speechesFromCSV(strings.NewReader(src))
		require.NoError(t, err)

		var good int
		var lastErr error
		for r, err := range source {
			if err != nil {
				lastErr = err
				continue
			}
			good++
			assert.Equal(t, 2023, r.Year)
		}
		assert.Equal(t, 1, good)
		require.Error(t, lastErr)
		assert.Contains(t, lastErr.Error(), "line 3")
		assert.Contains(t, lastErr.Error(), "twenty")
	})
}

func TestLoadConfig(t *testing.T) {
	run := func(t *testing.T, args ...string) *config.Config {
		t.Helper()
		var got *config.Config
		app := &cli.App{
			Name: "test",
			Flags: append(serviceFlags(), &cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"HANSARD_CONFIG"},
			}),
			Action: func(c *cli.Context) error {
				var err error
				got, err = loadConfig(c)
				return err
			},
		}
		require.NoError(t, app.Run(append([]string{"test"}, args...)))
		return got
	}

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg := run(t)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("file then env then flags", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "hansard.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  table: from_file\nnames:\n  mode: fuzzy\n"), 0644))
		t.Setenv("DATABASE_URL", "postgres://env/hansard")

		cfg := run(t, "--config", path, "--catalog", "/flag/topics.json")
		assert.Equal(t, "from_file", cfg.Database.Table)
		assert.Equal(t, "fuzzy", cfg.Names.Mode)
		assert.Equal(t, "postgres://env/hansard", cfg.Database.URL)
		assert.Equal(t, "/flag/topics.json", cfg.Catalog.Path)

		cfg = run(t, "--config", path, "--database-url", "flag.db", "--table", "from_flag")
		assert.Equal(t, "flag.db", cfg.Database.URL)
		assert.Equal(t, "from_flag", cfg.Database.Table)
	})
}

func TestSetupLogger(t *testing.T) {
	newLoggerApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}
	noop := func(c *cli.Context) error { return nil }

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newLoggerApp(noop).Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newLoggerApp(noop).Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		err := newLoggerApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}).Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
