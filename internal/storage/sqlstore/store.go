// Package sqlstore implements storage.Provider with hand-written SQL over
// database/sql, for the MySQL and SQLite engines.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/database"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"go.uber.org/zap"
)

// Store is the database/sql storage provider.
type Store struct {
	db      *sql.DB
	dialect string
	logger  *zap.Logger
	now     func() time.Time
}

var _ storage.Provider = (*Store)(nil)

// New wraps an open, migrated connection pool.
func New(db *sql.DB, dialect string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  logger.Named("sqlstore"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Open connects to the configured engine, generating the schema on first run.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	db, dialect, err := database.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	return New(db, dialect, logger), nil
}

// DB exposes the pool for diagnostics.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect is "mysql" or "sqlite".
func (s *Store) Dialect() string { return s.dialect }

func (s *Store) Close() error {
	return s.db.Close()
}

// scope returns the user-scope parameter for queries using the
// (@user_id IS NULL OR user_id = @user_id) predicate.
func scope(ctx context.Context) Params {
	return Params{"user_id": requestctx.UserID(ctx)}
}

func (s *Store) insert(ctx context.Context, query string, sources ...any) (int64, error) {
	q, args, err := bindNamed(query, sources...)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, s.translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}
	return id, nil
}

func (s *Store) execute(ctx context.Context, query string, sources ...any) (int64, error) {
	q, args, err := bindNamed(query, sources...)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, s.translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return n, nil
}

func (s *Store) scalar(ctx context.Context, query string, sources ...any) (int64, error) {
	q, args, err := bindNamed(query, sources...)
	if err != nil {
		return 0, err
	}
	var raw any
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return toInt64(raw)
}

func queryRows[T any](ctx context.Context, s *Store, query string, sources ...any) ([]*T, error) {
	q, args, err := bindNamed(query, sources...)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll[T](rows)
}

// queryOne returns the first mapped row, or a NotFound error naming entity and key.
func queryOne[T any](ctx context.Context, s *Store, entity string, key any, query string, sources ...any) (*T, error) {
	results, err := queryRows[T](ctx, s, query, sources...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, storage.NotFound(entity, key)
	}
	return results[0], nil
}

// translate maps engine constraint violations onto the storage sentinels.
func (s *Store) translate(err error) error {
	return database.TranslateError(err)
}

// orderBy builds an ORDER BY clause from a whitelisted column, with the
// primary key as a tiebreaker so pages are stable.
func orderBy(column, pk string, dir string) string {
	clause := fmt.Sprintf("ORDER BY %s %s", column, dir)
	if !strings.EqualFold(column, pk) {
		clause += fmt.Sprintf(", %s %s", pk, dir)
	}
	return clause
}
