package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// unicodeLower replaces SQLite's LOWER, which folds ASCII letters only.
const unicodeLower = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLower, 1, lowerFunc)
}

func lowerFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

type sqlBackend struct {
	db *sql.DB
}

var sqliteDialect = dialect{
	name:          "sqlite",
	placeholder:   func(int) string { return "?" },
	idColumn:      "INTEGER PRIMARY KEY AUTOINCREMENT",
	timestampType: "TIMESTAMP",
	lower:         unicodeLower,
}

// NewSQLite opens (creating if needed) the SQLite database at path.
func NewSQLite(ctx context.Context, path string, logger *zerolog.Logger) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open sqlite %s: %w", ErrStoreUnavailable, path, err)
	}

	// Every connection to :memory: gets its own database.
	if path == MemoryPath {
		sqlDB.SetMaxOpenConns(1)
	}

	db := &DB{backend: &sqlBackend{db: sqlDB}, dialect: sqliteDialect, logger: logger}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite ping failed: %w", ErrStoreUnavailable, err)
	}

	return db, nil
}

func (b *sqlBackend) query(ctx context.Context, query string, args []any, each func(scanner) error) error {
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := each(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (b *sqlBackend) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return b.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}

func (b *sqlBackend) exec(ctx context.Context, query string) error {
	_, err := b.db.ExecContext(ctx, query)
	return err
}

func (b *sqlBackend) ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *sqlBackend) close() {
	_ = b.db.Close()
}
