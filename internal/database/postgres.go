package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

type pgBackend struct {
	pool *pgxpool.Pool
}

var postgresDialect = dialect{
	name:          "postgres",
	placeholder:   func(n int) string { return fmt.Sprintf("$%d", n) },
	idColumn:      "BIGSERIAL PRIMARY KEY",
	timestampType: "TIMESTAMPTZ",
	lower:         "LOWER",
	// Backslash is not an escape character, as in SQLite.
	likeEscape: " ESCAPE ''",
}

// NewPostgres opens a pgx pool and verifies it with a single ping.
func NewPostgres(ctx context.Context, config Config, logger *zerolog.Logger) (*DB, error) {
	pgPool, err := pgxpool.New(ctx, config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to postgres: %w", ErrStoreUnavailable, err)
	}

	db := &DB{backend: &pgBackend{pool: pgPool}, dialect: postgresDialect, logger: logger}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: postgres ping failed: %w", ErrStoreUnavailable, err)
	}

	return db, nil
}

// NewWithBackoff retries NewPostgres with exponential backoff, for containers that start
// before their database does.
func NewWithBackoff(ctx context.Context, config Config, maxRetries int, logger *zerolog.Logger) (*DB, error) {
	var err error
	for i := range maxRetries {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("Waiting before database retry")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		logger.Info().Int("attempt", i+1).Int("max_retries", maxRetries).Msg("Connecting to postgres")

		var db *DB
		db, err = NewPostgres(ctx, config, logger)
		if err == nil {
			logger.Info().Int("attempts_needed", i+1).Msg("Postgres connected")
			return db, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Postgres connection failed")
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, err)
}

func (b *pgBackend) query(ctx context.Context, query string, args []any, each func(scanner) error) error {
	rows, err := b.pool.Query(ctx, query, args...)
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

func (b *pgBackend) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return b.pool.QueryRow(ctx, query, args...).Scan(dest...)
}

func (b *pgBackend) exec(ctx context.Context, query string) error {
	_, err := b.pool.Exec(ctx, query)
	return err
}

func (b *pgBackend) ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b *pgBackend) close() {
	b.pool.Close()
}
