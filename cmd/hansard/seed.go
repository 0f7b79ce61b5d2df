package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage/sqlstore"
	"github.com/urfave/cli/v2"
)

var errMissingColumn = errors.New("missing csv column")

func seedCommand(c *cli.Context) error {
	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	f, err := os.Open(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	source, err := speechesFromCSV(f)
	if err != nil {
		return err
	}

	store, err := sqlstore.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	table := c.String("table")
	if err := store.CreateSchema(c.Context, table); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	n, err := seedBatched(c.Context, store, table, source, batchSize)
	if err != nil {
		return err
	}
	slog.Info("seeded speeches", "rows", n, "db", c.String("db"), "table", table)
	fmt.Fprintf(c.App.Writer, "Inserted %d speeches into %s\n", n, table)
	return nil
}

// speechesFromCSV reads the header row and returns an iterator over the
// remaining rows. Columns are matched by name and may appear in any order.
func speechesFromCSV(r io.Reader) (iter.Seq2[core.SpeechRecord, error], error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range core.SpeechColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, col)
		}
	}

	return func(yield func(core.SpeechRecord, error) bool) {
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(core.SpeechRecord{}, err)
				return
			}
			line, _ := reader.FieldPos(0)
			record, err := parseSpeech(row, index)
			if err != nil {
				yield(core.SpeechRecord{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}, nil
}

func parseSpeech(row []string, index map[string]int) (core.SpeechRecord, error) {
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	year, err := strconv.Atoi(field("year"))
	if err != nil {
		return core.SpeechRecord{}, fmt.Errorf("invalid year %q", field("year"))
	}
	topicID, err := strconv.Atoi(field("topic_id"))
	if err != nil {
		return core.SpeechRecord{}, fmt.Errorf("invalid topic_id %q", field("topic_id"))
	}

	return core.SpeechRecord{
		ScrapedName: field("scraped_name"),
		ProcParty:   field("proc_party"),
		Text:        row[index["text"]],
		Year:        year,
		PersonURL:   field("person_url"),
		TopicID:     topicID,
	}, nil
}

// seedBatched inserts records from source in transactions of batchSize rows.
func seedBatched(ctx context.Context, store *sqlstore.Store, table string, source iter.Seq2[core.SpeechRecord, error], batchSize int) (int, error) {
	batch := make([]core.SpeechRecord, 0, batchSize)
	total := 0

	flush := func() error {
		if err := store.InsertSpeeches(ctx, table, batch); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d: %w", total+1, total+len(batch), err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for record, err := range source {
		if err != nil {
			return total, err
		}
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}
	return total, nil
}
