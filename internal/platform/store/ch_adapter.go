package store

import (
	"context"

	"bikeshare/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// newCHAdapter wraps an open *ch.CH as a Querier
func newCHAdapter(c *ch.CH) *clickhouseAdapter {
	return &clickhouseAdapter{inner: c}
}

// clickhouseAdapter adapts *ch.CH to the store seams
type clickhouseAdapter struct {
	inner *ch.CH
}

var (
	_ Querier = (*clickhouseAdapter)(nil)
	_ Pinger  = (*clickhouseAdapter)(nil)
)

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

func (a *clickhouseAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.inner.QueryRow(ctx, sql, args...)
}

// Ping verifies connectivity with ClickHouse
func (a *clickhouseAdapter) Ping(ctx context.Context) error { return a.inner.Ping(ctx) }

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows wraps driver.Rows as store.Rows; a close error surfaces through Err
type chRows struct {
	r        driver.Rows
	closeErr error
}

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Columns() []string      { return r.r.Columns() }
func (r *chRows) Close()                 { r.closeErr = r.r.Close() }

func (r *chRows) Err() error {
	if err := r.r.Err(); err != nil {
		return err
	}
	return r.closeErr
}
