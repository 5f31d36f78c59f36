// Package gormstore implements storage.Provider on gorm, for PostgreSQL, MySQL
// and SQLite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/database"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Engine names accepted by Open.
const (
	EnginePostgres = "postgres"
	EngineMySQL    = "gorm-mysql"
	EngineSQLite   = "gorm-sqlite"
)

// Store is the gorm storage provider.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

var _ storage.Provider = (*Store)(nil)

// Open connects to the configured engine and migrates the schema.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Provider {
	case EnginePostgres:
		dialector = postgres.Open(cfg.DSN)
	case EngineMySQL:
		dsn, err := database.MySQLDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureDatabase(dsn); err != nil {
			return nil, err
		}
		dialector = gormmysql.Open(dsn)
	case EngineSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = database.SQLiteDSN(cfg.Path)
		}
		// Runs on the pure-Go driver database registers, not the cgo one.
		dialector = gormsqlite.New(gormsqlite.Config{DriverName: database.DriverSQLite, DSN: dsn})
	default:
		return nil, fmt.Errorf("database provider %q is not a gorm engine", cfg.Provider)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s := New(db, log)
	if err := s.Migrate(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing gorm handle. The schema is not migrated.
func New(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		db:     db,
		logger: log.Named("gormstore"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates or alters the tables and seeds the built-in part types once.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&userRow{}, &projectRow{}, &partTypeRow{}, &partRow{}, &credentialRow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var builtIn int64
	if err := db.Model(&partTypeRow{}).Where("user_id IS NULL").Count(&builtIn).Error; err != nil {
		return fmt.Errorf("count built-in part types: %w", err)
	}
	if builtIn > 0 {
		return nil
	}
	rows := make([]partTypeRow, 0, len(storage.BuiltInPartTypes))
	for _, name := range storage.BuiltInPartTypes {
		rows = append(rows, partTypeRow{Name: name, DateCreatedUtc: s.now()})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed part types: %w", err)
	}
	s.logger.Info("seeded built-in part types", zap.Int("count", len(rows)))
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// scoped restricts a query to the request user when one is present.
func (s *Store) scoped(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if uid := requestctx.UserID(ctx); uid != nil {
		db = db.Where("user_id = ?", *uid)
	}
	return db
}

func paginate(db *gorm.DB, req models.PaginatedRequest, whitelist map[string]string, pk string) *gorm.DB {
	req = req.Normalize()
	column := req.OrderColumn(whitelist, pk)
	dir := req.Direction.SQL()
	db = db.Order(column + " " + dir)
	if !strings.EqualFold(column, pk) {
		db = db.Order(pk + " " + dir)
	}
	return db.Offset(req.Offset()).Limit(req.Results)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", storage.ErrInvalidArgument, err)
	}
	// Dialectors that cannot classify the driver error pass it through untouched.
	return database.TranslateError(err)
}

func notFound(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.NotFound(entity, key)
	}
	return err
}
