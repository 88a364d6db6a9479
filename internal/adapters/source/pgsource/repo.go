// Package pgsource loads trips from a Postgres trips table
package pgsource

import (
	"context"
	"fmt"
	"strings"

	"bikeshare/internal/core/trip"
	"bikeshare/internal/modkit/repokit"
	"bikeshare/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// DefaultTable is read when no table is configured
const DefaultTable = "trips"

const selectTrips = `
SELECT start_time, end_time, trip_duration, start_station, end_station,
       COALESCE(user_type, ''), gender, birth_year
FROM %s
WHERE city = $1
ORDER BY start_time`

type (
	pg struct {
		q   repokit.Queryer
		sql string
	}
	binder struct{ table string }
)

// Storage streams the trips of one city in start time order
type Storage interface {
	EachTrip(ctx context.Context, city string, fn func(trip.Attrs) error) error
}

// NewPG constructs a binder for table, which may be schema qualified ("bikeshare.trips")
func NewPG(table string) repokit.Binder[Storage] {
	if strings.TrimSpace(table) == "" {
		table = DefaultTable
	}
	return binder{table: table}
}

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) Storage {
	ident := pgx.Identifier(strings.Split(b.table, ".")).Sanitize()
	return &pg{q: repokit.Tagged(q, "pgsource.trips"), sql: fmt.Sprintf(selectTrips, ident)}
}

// EachTrip implements Storage
func (s *pg) EachTrip(ctx context.Context, city string, fn func(trip.Attrs) error) error {
	return store.Each(ctx, s.q, scanTrip, fn, s.sql, city)
}

func scanTrip(r repokit.Row) (trip.Attrs, error) {
	var a trip.Attrs
	err := r.Scan(&a.Start, &a.End, &a.Duration, &a.StartStation, &a.EndStation, &a.UserType, &a.Gender, &a.BirthYear)
	return a, err
}
