//go:build integration_pg
// +build integration_pg

package pgsource

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bikeshare/internal/core/filter"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/store"

	"github.com/jackc/pgx/v5"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
CREATE TABLE trips (
	id            bigserial PRIMARY KEY,
	city          text        NOT NULL,
	start_time    timestamp   NOT NULL,
	end_time      timestamp   NOT NULL,
	trip_duration bigint      NOT NULL,
	start_station text        NOT NULL,
	end_station   text        NOT NULL,
	user_type     text,
	gender        text,
	birth_year    integer
)`

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
}

func seed(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	rows := [][]any{
		{"chicago", "2017-01-02 08:00:00", "2017-01-02 08:05:00", 300, "A", "B", "Subscriber", "Male", 1980},
		{"chicago", "2017-01-01 07:00:00", "2017-01-01 07:10:00", 600, "B", "C", nil, nil, nil},
		{"washington", "2017-03-01 10:00:00", "2017-03-01 10:01:00", 60, "X", "Y", "Customer", nil, nil},
	}
	for _, r := range rows {
		_, err := conn.Exec(ctx, `INSERT INTO trips
			(city, start_time, end_time, trip_duration, start_station, end_station, user_type, gender, birth_year)
			VALUES ($1, $2::timestamp, $3::timestamp, $4, $5, $6, $7, $8, $9)`, r...)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestLoad_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	seed(t, ctx, dsn)

	st, err := store.Open(ctx, store.Config{
		AppName: "bikeshare-pgsource-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, ConnectRetries: 3, PingTimeout: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	src := New(st.PG, "")
	trips, err := src.Load(ctx, filter.Chicago)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if trips.Len() != 2 {
		t.Fatalf("rows = %d", trips.Len())
	}
	// ordered by start time
	if trips.At(0).Duration() != 600 {
		t.Fatalf("first row duration = %d", trips.At(0).Duration())
	}
	if trips.At(0).UserType() != "" {
		t.Fatalf("null user type = %q", trips.At(0).UserType())
	}
	if g, ok := trips.At(1).Gender(); !ok || g != "Male" {
		t.Fatalf("gender = %q,%v", g, ok)
	}
	if _, ok := trips.At(0).BirthYear(); ok {
		t.Fatal("null birth year should be absent")
	}

	if _, err := src.Load(ctx, filter.NewYorkCity); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found for a city without rows, got %v", err)
	}
	if _, err := New(st.PG, "missing_table").Load(ctx, filter.Chicago); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found for a missing table, got %v", err)
	}
}
