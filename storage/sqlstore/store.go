package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage"
	"github.com/sethvargo/go-retry"
)

const (
	defaultQueryTimeout = 5 * time.Second
	defaultRetryDelay   = 50 * time.Millisecond
)

// Store implements storage.SpeechStore over database/sql.
type Store struct {
	db           *sql.DB
	dialect      storage.Dialect
	queryTimeout time.Duration
	retryDelay   time.Duration
	logger       *slog.Logger
	closed       atomic.Bool
}

var _ storage.SpeechStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithQueryTimeout bounds each query attempt. Default is 5s.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) error {
		if d <= 0 {
			return fmt.Errorf("%w: query timeout must be positive", storage.ErrInvalidQuery)
		}
		s.queryTimeout = d
		return nil
	}
}

// WithRetryDelay sets the pause before the single retry of a transient failure.
// Zero retries immediately.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Store) error {
		if d < 0 {
			return fmt.Errorf("%w: retry delay cannot be negative", storage.ErrInvalidQuery)
		}
		s.retryDelay = d
		return nil
	}
}

// DriverFor returns the database/sql driver name and dialect for a DSN.
// postgres:// and postgresql:// URLs use pgx; anything else is a SQLite path.
func DriverFor(dsn string) (string, storage.Dialect) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", storage.Postgres
	}
	return "sqlite3", storage.SQLite
}

// Open connects to the database named by dsn.
func Open(dsn string, opts ...Option) (*Store, error) {
	driverName, dialect := DriverFor(dsn)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	s, err := newStore(db, dialect, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.logger.Debug("opened speech store", "driver", driverName)
	return s, nil
}

// New wraps an existing pool. The store takes ownership and closes db on Close.
func New(db *sql.DB, dialect storage.Dialect, opts ...Option) (*Store, error) {
	return newStore(db, dialect, opts...)
}

func newStore(db *sql.DB, dialect storage.Dialect, opts ...Option) (*Store, error) {
	s := &Store{
		db:           db,
		dialect:      dialect,
		queryTimeout: defaultQueryTimeout,
		retryDelay:   defaultRetryDelay,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dialect returns the SQL dialect of the underlying database.
func (s *Store) Dialect() storage.Dialect {
	return s.dialect
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	return s.db.PingContext(ctx)
}

// withConn runs fn on a dedicated connection under the query timeout,
// retrying once if the failure is transient. The connection is returned to
// the pool before withConn returns.
func (s *Store) withConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	attempt := 0
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempt++
		err := s.attempt(ctx, fn)
		if err != nil && isTransient(err) {
			s.logger.Debug("transient store failure", "attempt", attempt, "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// attempt runs fn once on a pooled connection bounded by the query timeout.
func (s *Store) attempt(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	conn, err := s.db.Conn(attemptCtx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(attemptCtx, conn)
}

// backoff allows one retry after retryDelay.
func (s *Store) backoff() retry.Backoff {
	if s.retryDelay <= 0 {
		return retry.WithMaxRetries(1, retry.BackoffFunc(func() (time.Duration, bool) { return 0, false }))
	}
	return retry.WithMaxRetries(1, retry.NewConstant(s.retryDelay))
}

// QuerySpeeches implements storage.SpeechStore.
func (s *Store) QuerySpeeches(ctx context.Context, table string, filters storage.Filters, rowCap int) ([]core.SpeechRecord, error) {
	query, args, err := storage.SelectSpeeches(s.dialect, table, filters, rowCap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreQuery, err)
	}

	var records []core.SpeechRecord
	err = s.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		records = records[:0]
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name, party, text, url sql.NullString
				year, topic            sql.NullInt64
			)
			if err := rows.Scan(&name, &party, &text, &year, &url, &topic); err != nil {
				return err
			}
			records = append(records, core.SpeechRecord{
				ScrapedName: name.String,
				ProcParty:   party.String,
				Text:        text.String,
				Year:        int(year.Int64),
				PersonURL:   url.String,
				TopicID:     int(topic.Int64),
			})
		}
		return rows.Err()
	})
	if err != nil {
		s.logger.Error("speech query failed", "table", table, "err", err)
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreQuery, err)
	}

	s.logger.Debug("speech query", "table", table, "rows", len(records))
	return records, nil
}

// Distinct implements storage.SpeechStore.
func (s *Store) Distinct(ctx context.Context, table, column string) ([]string, error) {
	query, err := storage.SelectDistinct(table, column)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreQuery, err)
	}

	var values []string
	err = s.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		values = values[:0]
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var v any
			if err := rows.Scan(&v); err != nil {
				return err
			}
			values = append(values, formatValue(v))
		}
		return rows.Err()
	})
	if err != nil {
		s.logger.Error("distinct query failed", "table", table, "column", column, "err", err)
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreQuery, err)
	}
	return values, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Close closes the connection pool. Subsequent calls return nil.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
