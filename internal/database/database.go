package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
)

// ErrStoreUnavailable marks failures to open or reach the record store.
var ErrStoreUnavailable = errors.New("record store unavailable")

type scanner interface {
	Scan(dest ...any) error
}

// backend hides the driver API (pgx pool or database/sql) behind the few calls the repository needs.
type backend interface {
	query(ctx context.Context, query string, args []any, each func(scanner) error) error
	queryRow(ctx context.Context, query string, args []any, dest ...any) error
	exec(ctx context.Context, query string) error
	ping(ctx context.Context) error
	close()
}

type dialect struct {
	name          string
	placeholder   func(n int) string
	idColumn      string
	timestampType string
	// lower must fold case with the same Unicode rules as strings.ToLower.
	lower      string
	likeEscape string
}

type DB struct {
	backend backend
	dialect dialect
	logger  *zerolog.Logger
}

func (db *DB) Driver() string {
	return db.dialect.name
}

func (db *DB) Ping(ctx context.Context) error {
	return db.backend.ping(ctx)
}

func (db *DB) Close() {
	db.backend.close()
}

// Migrate creates the five record tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema(db.dialect) {
		if err := db.backend.exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: failed to create tables: %w", ErrStoreUnavailable, err)
		}
	}

	db.logger.Debug().Str("driver", db.dialect.name).Msg("Schema ready")
	return nil
}

// Count returns the number of rows across all collections.
func (db *DB) Count(ctx context.Context) (int64, error) {
	var total int64
	for _, name := range tableNames {
		var n int64
		if err := db.backend.queryRow(ctx, "SELECT COUNT(*) FROM "+name, nil, &n); err != nil {
			return 0, fmt.Errorf("count %s: %w", name, err)
		}
		total += n
	}
	return total, nil
}

func (db *DB) FindSchedules(ctx context.Context, pattern string) ([]records.Schedule, error) {
	return find(ctx, db, scheduleTable, pattern)
}

func (db *DB) FindFacilities(ctx context.Context, pattern string) ([]records.Facility, error) {
	return find(ctx, db, facilityTable, pattern)
}

func (db *DB) FindDining(ctx context.Context, pattern string) ([]records.DiningOption, error) {
	return find(ctx, db, diningTable, pattern)
}

func (db *DB) FindLibrary(ctx context.Context, pattern string) ([]records.LibraryItem, error) {
	return find(ctx, db, libraryTable, pattern)
}

func (db *DB) FindAdmin(ctx context.Context, pattern string) ([]records.AdminOffice, error) {
	return find(ctx, db, adminTable, pattern)
}

func (db *DB) InsertSchedule(ctx context.Context, s records.Schedule) (int64, error) {
	return insert(ctx, db, scheduleTable, s)
}

func (db *DB) InsertFacility(ctx context.Context, f records.Facility) (int64, error) {
	return insert(ctx, db, facilityTable, f)
}

func (db *DB) InsertDining(ctx context.Context, d records.DiningOption) (int64, error) {
	return insert(ctx, db, diningTable, d)
}

func (db *DB) InsertLibrary(ctx context.Context, l records.LibraryItem) (int64, error) {
	return insert(ctx, db, libraryTable, l)
}

func (db *DB) InsertAdmin(ctx context.Context, a records.AdminOffice) (int64, error) {
	return insert(ctx, db, adminTable, a)
}

func find[T records.Record](ctx context.Context, db *DB, t table[T], pattern string) ([]T, error) {
	query, args := t.selectQuery(db.dialect, pattern)

	items := []T{}
	err := db.backend.query(ctx, query, args, func(row scanner) error {
		item, err := t.scan(row)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t.name, err)
	}

	return items, nil
}

func insert[T records.Record](ctx context.Context, db *DB, t table[T], item T) (int64, error) {
	var id int64
	if err := db.backend.queryRow(ctx, t.insertQuery(db.dialect), t.values(item), &id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", t.name, err)
	}

	db.logger.Info().Str("table", t.name).Int64("id", id).Msg("Record inserted")
	return id, nil
}
