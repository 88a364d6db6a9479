package store

import (
	"context"
	"fmt"
	"time"

	chx "bikeshare/internal/platform/store/ch"
	"bikeshare/internal/platform/store/pg"
)

// seams for tests
var (
	pgOpen = pg.Open
	chOpen = chx.Open
	sleep  = time.Sleep
)

// openPG opens pg, pings with bounded backoff and wraps it with the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (Querier, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Ping(toCtx) // pool ping, bypasses the tracer
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Debug().Int("attempt", i+1).Err(lastErr).Msg("postgres not ready")
		sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// openCH opens the native clickhouse connection and verifies it once
func openCH(ctx context.Context, cfg Config, _ *Store) (Querier, error) {
	c, err := chOpen(ctx, chx.Config{
		URL:         cfg.CH.URL,
		Role:        "explore",
		Tag:         cfg.AppName,
		DialTimeout: cfg.CH.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return newCHAdapter(c), nil
}
