package store

import (
	"context"
	"errors"
	"time"

	"bikeshare/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pgxQuerier is the slice of *pgxpool.Pool the adapter reads through
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter wraps pg.PG and implements Querier
// it also emits query trace events when a tracer is configured on pg.PG
type pgAdapter struct {
	p      *pg.PG
	q      pgxQuerier
	tracer pg.QueryTracer
	slowUS int64
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		p:      p,
		q:      p.Pool,
		tracer: p.Tracer,
		slowUS: int64(p.SlowMs) * 1000,
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.q == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	if a != nil && a.p != nil {
		a.p.Close()
	}
	return nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		a.emit(ctx, sql, args, start, 0, err)
		return nil, err
	}
	// emit once the caller is done so elapsed covers the scan loop
	return &rows{r: rs, done: func(n int64, err error) { a.emit(ctx, sql, args, start, n, err) }}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.q.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			a.emit(ctx, sql, args, start, 1, scanErr)
		},
	}
}

// emit sends a query event to the configured tracer
func (a *pgAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, n int64, err error) {
	if a == nil || a.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	tag, _ := QueryTag(ctx)
	a.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		Tag:       tag,
		Rows:      n,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      a.slowUS >= 0 && elapsedUS >= a.slowUS,
	})
}

// adapters for pgx to the tiny Row/Rows contracts

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct {
	r      pgx.Rows
	n      int64
	done   func(n int64, err error)
	closed bool
}

func (x *rows) Next() bool {
	if x.r.Next() {
		x.n++
		return true
	}
	return false
}

func (x *rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *rows) Err() error            { return x.r.Err() }

func (x *rows) Close() {
	if x.closed {
		return
	}
	x.closed = true
	x.r.Close()
	if x.done != nil {
		x.done(x.n, x.r.Err())
	}
}

func (x *rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}
