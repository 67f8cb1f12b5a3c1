package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TxQuerier is the query surface shared by pgxpool.Pool and pgx.Tx. The
// redemption path runs the same repository methods inside and outside a
// transaction, so those methods take a TxQuerier rather than a concrete pool.
type TxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// backoffFor caps the exponential retry delay at 16s so a long attempts
// count degrades into steady polling instead of minute-long gaps.
func backoffFor(attempt int) time.Duration {
	d := time.Duration(1<<attempt) * time.Second
	if d > 16*time.Second {
		d = 16 * time.Second
	}
	return d
}

// NewPool dials Postgres and verifies the connection with a ping, retrying
// with exponential backoff. The studio deploys behind docker-compose where
// the database regularly comes up after the API container, so the first few
// attempts failing is the normal startup path, not an error.
func NewPool(ctx context.Context, dsn string, maxRetries int) (*pgxpool.Pool, error) {
	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Info().
					Str("database", cfg.ConnConfig.Database).
					Msg("database connection established")
				return pool, nil
			} else {
				pool.Close()
				err = fmt.Errorf("ping failed: %w", pingErr)
			}
		}
		lastErr = err

		wait := backoffFor(attempt)
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("attempts", attempts).
			Dur("next_retry_in", wait).
			Msg("database not ready, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, lastErr)
}
