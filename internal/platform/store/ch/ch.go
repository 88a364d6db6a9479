// Package ch provides a read-only clickhouse client over the native protocol
package ch

import (
	"context"
	"errors"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL         string
	Role        string
	Tag         string
	DialTimeout time.Duration
}

// CH wraps a native clickhouse connection
type CH struct {
	Conn driver.Conn
}

var openConn = clickhouse.Open

// Options turns cfg into driver options, stamping client info for system.query_log
func Options(cfg Config) (*clickhouse.Options, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return opts, nil
}

// Open parses the DSN and returns a lazily connected client
func Open(_ context.Context, cfg Config) (*CH, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := openConn(opts)
	if err != nil {
		return nil, err
	}
	return &CH{Conn: conn}, nil
}

var errClosed = errors.New("ch: connection not open")

// Query runs a query and returns driver rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	if c == nil || c.Conn == nil {
		return nil, errClosed
	}
	return c.Conn.Query(ctx, sql, args...)
}

// QueryRow runs a query expected to return one row
func (c *CH) QueryRow(ctx context.Context, sql string, args ...any) driver.Row {
	if c == nil || c.Conn == nil {
		return errRow{errClosed}
	}
	return c.Conn.QueryRow(ctx, sql, args...)
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.Conn == nil {
		return errClosed
	}
	return c.Conn.Ping(ctx)
}

// Close closes resources
func (c *CH) Close() error {
	if c == nil || c.Conn == nil {
		return nil
	}
	return c.Conn.Close()
}

// errRow is a driver.Row that only reports err
type errRow struct{ err error }

func (r errRow) Err() error           { return r.err }
func (r errRow) Scan(...any) error    { return r.err }
func (r errRow) ScanStruct(any) error { return r.err }
