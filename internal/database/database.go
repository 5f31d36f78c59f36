package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Driver names registered with database/sql.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenDB opens the configured SQL engine, creates the MySQL database if it is
// missing, and applies the embedded schema migrations.
func OpenDB(cfg config.DatabaseConfig) (*sql.DB, string, error) {
	switch cfg.Provider {
	case DriverMySQL:
		dsn, err := MySQLDSN(cfg.DSN)
		if err != nil {
			return nil, "", err
		}
		if err := EnsureDatabase(dsn); err != nil {
			return nil, "", err
		}
		db, err := OpenDBWithDSN(DriverMySQL, dsn, cfg)
		if err != nil {
			return nil, "", err
		}
		if err := ApplyMigrations(db, DriverMySQL); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("run migrations: %w", err)
		}
		return db, DriverMySQL, nil

	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = SQLiteDSN(cfg.Path)
		}
		db, err := OpenDBWithDSN(DriverSQLite, dsn, cfg)
		if err != nil {
			return nil, "", err
		}
		if err := ApplyMigrations(db, DriverSQLite); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("run migrations: %w", err)
		}
		return db, DriverSQLite, nil
	}
	return nil, "", fmt.Errorf("database provider %q is not a database/sql engine", cfg.Provider)
}

// OpenDBWithDSN creates and configures a connection pool for any driver and DSN.
func OpenDBWithDSN(driver, dsn string, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = maxOpen
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	return db, nil
}

// SQLiteDSN builds a modernc.org/sqlite DSN for a database file.
func SQLiteDSN(path string) string {
	clean := filepath.Clean(strings.TrimSpace(path))
	return "file:" + clean + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
}

// MySQLDSN normalizes a MySQL DSN so DATETIME columns scan into time.Time in UTC.
func MySQLDSN(dsn string) (string, error) {
	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if mcfg.DBName == "" {
		return "", fmt.Errorf("mysql dsn must name a database")
	}
	mcfg.ParseTime = true
	mcfg.Loc = time.UTC
	return mcfg.FormatDSN(), nil
}

// EnsureDatabase connects to the server without selecting a database and
// creates the DSN's database if it does not exist yet.
func EnsureDatabase(dsn string) error {
	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("parse mysql dsn: %w", err)
	}
	name := mcfg.DBName
	mcfg.DBName = ""

	server, err := sql.Open(DriverMySQL, mcfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("open mysql server: %w", err)
	}
	defer server.Close()

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", strings.ReplaceAll(name, "`", "``"))
	if _, err := server.Exec(query); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}
