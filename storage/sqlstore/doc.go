// Package sqlstore implements storage.SpeechStore on database/sql.
//
// SQLite (github.com/mattn/go-sqlite3) serves local files; PostgreSQL is
// reached through pgx's database/sql driver when the DSN is a postgres://
// URL. Each call checks out its own connection, bounds every attempt with a
// query timeout, and retries once when the failure is a dropped connection
// or a busy/locked database.
package sqlstore
