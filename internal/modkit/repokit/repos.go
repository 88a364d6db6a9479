// Package repokit provides common types and helpers for read repositories
package repokit

import (
	"context"

	"bikeshare/internal/platform/store"
)

// Queryer is the minimal read surface for SQL repos (postgres or clickhouse)
type Queryer = store.Querier

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)

// Tagged wraps q so every query carries tag for the tracer
func Tagged(q Queryer, tag string) Queryer {
	if q == nil || tag == "" {
		return q
	}
	return tagged{inner: q, tag: tag}
}

type tagged struct {
	inner Queryer
	tag   string
}

func (t tagged) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return t.inner.Query(store.WithQueryTag(ctx, t.tag), sql, args...)
}

func (t tagged) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.inner.QueryRow(store.WithQueryTag(ctx, t.tag), sql, args...)
}
