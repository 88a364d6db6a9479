package store

import (
	"time"

	"bikeshare/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// FromEnv reads backend settings under c (typically the BIKESHARE_ prefix)
// only the backend named by source is enabled; the other stays zero
func FromEnv(c config.Conf, source, appName string) Config {
	cfg := Config{AppName: appName}
	switch source {
	case "pg":
		pg := c.Prefix("PGSQL_")
		cfg.PG = PGConfig{
			Enabled:        true,
			URL:            pg.MustDSN("DBURL", "postgres", "postgresql"),
			MaxConns:       int32(pg.MayPositiveInt("MAX_CONNS", 2)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			ConnectRetries: pg.MayPositiveInt("CONNECT_RETRIES", 6),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		}
	case "ch":
		ch := c.Prefix("CLICKHOUSE_")
		cfg.CH = CHConfig{
			Enabled:     true,
			URL:         ch.MustDSN("DBURL", "clickhouse", "tcp"),
			DialTimeout: ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		}
	}
	return cfg
}
