package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage"
)

const schemaTemplate = `CREATE TABLE IF NOT EXISTS %[1]s (
	scraped_name TEXT,
	proc_party   TEXT,
	text         TEXT,
	year         INTEGER,
	decade       INTEGER,
	person_url   TEXT,
	topic_id     INTEGER
);
CREATE INDEX IF NOT EXISTS %[1]s_topic_year ON %[1]s (topic_id, year);
CREATE INDEX IF NOT EXISTS %[1]s_name ON %[1]s (scraped_name)`

// CreateSchema creates table and its indexes if they do not exist.
func (s *Store) CreateSchema(ctx context.Context, table string) error {
	if !storage.ValidIdentifier(table) {
		return fmt.Errorf("%w: table %q", storage.ErrInvalidIdentifier, table)
	}
	stmts := strings.Split(fmt.Sprintf(schemaTemplate, table), ";\n")
	return s.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		for _, stmt := range stmts {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// Decade returns the decade a year belongs to, e.g. 2023 -> 2020.
func Decade(year int) int {
	return year / 10 * 10
}

// InsertSpeeches appends records to table in one transaction.
func (s *Store) InsertSpeeches(ctx context.Context, table string, records []core.SpeechRecord) error {
	if !storage.ValidIdentifier(table) {
		return fmt.Errorf("%w: table %q", storage.ErrInvalidIdentifier, table)
	}
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 7)
	for i := range placeholders {
		placeholders[i] = s.dialect.Placeholder(i + 1)
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (scraped_name, proc_party, text, year, decade, person_url, topic_id) VALUES (%s)",
		table, strings.Join(placeholders, ", "))

	// Large imports can exceed the per-query timeout, so the transaction only
	// honors the caller's context.
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, r := range records {
		if _, err := prepared.ExecContext(ctx, r.ScrapedName, r.ProcParty, r.Text, r.Year, Decade(r.Year), r.PersonURL, r.TopicID); err != nil {
			return fmt.Errorf("inserting speech by %q: %w", r.ScrapedName, err)
		}
	}
	return tx.Commit()
}
