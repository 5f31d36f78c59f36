package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/go-sql-driver/mysql"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// TranslateError maps driver constraint violations onto the storage sentinels:
// unique keys become ErrAlreadyExists and dangling foreign keys ErrInvalidArgument.
// Other errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, myErr.Message)
		case mysqlNoReferencedRow:
			return fmt.Errorf("%w: %s", storage.ErrInvalidArgument, myErr.Message)
		}
		return err
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, liteErr.Error())
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s", storage.ErrInvalidArgument, liteErr.Error())
		}
		// Without extended result codes only the message tells the constraints apart.
		msg := liteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, msg)
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fmt.Errorf("%w: %s", storage.ErrInvalidArgument, msg)
		}
	}
	return err
}
