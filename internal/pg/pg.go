// Package pg connects the user service to PostgreSQL: the pgx pool, its
// query tracer and the schema migrations.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/remiges-tech/logharbour/logharbour"
)

// NewPool opens a pgx pool on connURL and checks it with a ping. Queries are
// traced to logger at level and above.
func NewPool(ctx context.Context, connURL string, logger *logharbour.Logger, level *LogLevel) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	if logger != nil {
		config.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   &TracerLogger{logger: logger, logLevel: level},
			LogLevel: tracelog.LogLevelTrace,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return pool, nil
}
