// Package store provides connection-pool bootstrap and schema migrations
// for the authentication and character stores.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// connectAttempts bounds the startup connectivity probe. The database is
// typically still coming up when the server starts under an orchestrator.
const (
	connectAttempts = 5
	connectBackoff  = 500 * time.Millisecond
)

// Open creates a connection pool for the given DSN and verifies
// connectivity with a bounded exponential-backoff ping.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("STORE_OPEN_FAILED").
			With("operation", "create pool").
			Wrap(err)
	}

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("STORE_UNREACHABLE").
			With("operation", "ping").
			Wrap(err)
	}
	return pool, nil
}
