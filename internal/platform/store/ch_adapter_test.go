package store

import (
	"context"
	"errors"
	"testing"

	"bikeshare/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// fakeCHRows embeds driver.Rows so only the methods the adapter uses need bodies
type fakeCHRows struct {
	driver.Rows
	cols     []string
	n        int
	i        int
	err      error
	closeErr error
	closed   bool
}

func (r *fakeCHRows) Next() bool {
	if r.i < r.n {
		r.i++
		return true
	}
	return false
}

func (r *fakeCHRows) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(r.i)
	return nil
}

func (r *fakeCHRows) Columns() []string { return r.cols }
func (r *fakeCHRows) Err() error        { return r.err }
func (r *fakeCHRows) Close() error {
	r.closed = true
	return r.closeErr
}

// fakeCHConn embeds driver.Conn for the same reason
type fakeCHConn struct {
	driver.Conn
	rows    *fakeCHRows
	pingErr error
	closed  bool
}

func (c *fakeCHConn) Query(context.Context, string, ...any) (driver.Rows, error) {
	if c.rows == nil {
		return nil, errors.New("no rows")
	}
	return c.rows, nil
}

func (c *fakeCHConn) Ping(context.Context) error { return c.pingErr }
func (c *fakeCHConn) Close() error {
	c.closed = true
	return nil
}

func TestCHAdapter_QueryWrapsRows(t *testing.T) {
	t.Parallel()

	fr := &fakeCHRows{cols: []string{"trip_duration"}, n: 2}
	a := newCHAdapter(&ch.CH{Conn: &fakeCHConn{rows: fr}})

	rs, err := a.Query(context.Background(), "SELECT trip_duration FROM trips WHERE city = ?", "chicago")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 1 || cols[0] != "trip_duration" {
		t.Fatalf("Columns mismatch: %#v", cols)
	}
	var sum int64
	for rs.Next() {
		var d int64
		if err := rs.Scan(&d); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		sum += d
	}
	rs.Close()
	if !fr.closed || sum != 3 {
		t.Fatalf("closed=%v sum=%d", fr.closed, sum)
	}
	if rs.Err() != nil {
		t.Fatalf("unexpected Err: %v", rs.Err())
	}
}

func TestCHAdapter_CloseErrorSurfacesThroughErr(t *testing.T) {
	t.Parallel()

	fr := &fakeCHRows{closeErr: errors.New("close failed")}
	a := newCHAdapter(&ch.CH{Conn: &fakeCHConn{rows: fr}})
	rs, err := a.Query(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	rs.Close()
	if err := rs.Err(); err == nil || err.Error() != "close failed" {
		t.Fatalf("want close error, got %v", err)
	}

	fr = &fakeCHRows{err: errors.New("stream broken"), closeErr: errors.New("close failed")}
	a = newCHAdapter(&ch.CH{Conn: &fakeCHConn{rows: fr}})
	rs, _ = a.Query(context.Background(), "SELECT 1")
	rs.Close()
	if err := rs.Err(); err == nil || err.Error() != "stream broken" {
		t.Fatalf("stream error must win, got %v", err)
	}
}

func TestCHAdapter_QueryError(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{Conn: &fakeCHConn{}})
	if _, err := a.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestCHAdapter_PingAndClose(t *testing.T) {
	t.Parallel()

	conn := &fakeCHConn{pingErr: errors.New("unreachable")}
	a := newCHAdapter(&ch.CH{Conn: conn})
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
	if err := a.Close(); err != nil || !conn.closed {
		t.Fatalf("Close err=%v closed=%v", err, conn.closed)
	}
}

func TestCHAdapter_NilConnQueryRow(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	var n int
	if err := a.QueryRow(context.Background(), "SELECT 1").Scan(&n); err == nil {
		t.Fatalf("expected error scanning from a closed client")
	}
}
