package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/hansard"
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/fuzzy"
	"github.com/poiesic/hansard/server"
	"github.com/poiesic/hansard/storage/sqlstore"
	"github.com/urfave/cli/v2"
)

func openService(c *cli.Context) (*hansard.Service, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	svc, err := hansard.NewService(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Server.Addr = fmt.Sprintf(":%d", c.Int("port"))
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := hansard.NewService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Close()

	srv, err := svc.NewServer(server.WithTopN(cfg.Catalog.TopN, max(50, cfg.Catalog.TopN)))
	if err != nil {
		return err
	}
	return srv.Run(ctx, cfg.Server.Addr)
}

func exploreCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	req := core.Request{
		QueryString: c.String("query"),
		TopicID:     c.String("topic"),
		Year:        c.String("year"),
		Name:        c.String("name"),
		Party:       c.String("party"),
	}
	result, err := svc.Explore(c.Context, req)
	if err != nil {
		return fmt.Errorf("explore failed: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func topicsCommand(c *cli.Context) error {
	if c.Int("top") <= 0 {
		return fmt.Errorf("top must be greater than 0")
	}
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	ranked, err := svc.Retriever().FindTopics(c.Context, c.String("query"), c.Int("top"))
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	for _, r := range ranked {
		kw, _ := svc.Catalog().KeywordsOf(r.TopicID)
		fmt.Fprintf(c.App.Writer, "#%d\t%.4f\t%s\n", r.TopicID, r.Score, strings.Join(kw, ", "))
	}
	return nil
}

func namesCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	resolver, err := fuzzy.NewResolver(fuzzy.WithThresholds(c.Int("high-threshold"), c.Int("low-threshold")))
	if err != nil {
		return err
	}

	store, err := sqlstore.Open(cfg.Database.URL, sqlstore.WithQueryTimeout(cfg.Database.QueryTimeout))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	known, err := store.Distinct(c.Context, cfg.Database.Table, "scraped_name")
	if err != nil {
		return err
	}

	matches := resolver.Matches(c.String("query"), known)
	if len(matches) == 0 {
		fmt.Fprintln(c.App.Writer, "no matching speakers")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(c.App.Writer, "%d\t%s\n", m.Score, m.Name)
	}
	return nil
}
