// Package chsource loads trips from a ClickHouse trips table
package chsource

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bikeshare/internal/core/trip"
	"bikeshare/internal/modkit/repokit"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/store"
)

// DefaultTable is read when no table is configured
const DefaultTable = "trips"

const selectTrips = `
SELECT start_time, end_time, trip_duration, start_station, end_station,
       user_type, gender, birth_year
FROM %s
WHERE city = ?
ORDER BY start_time`

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type (
	ch struct {
		q   repokit.Queryer
		sql string
	}
	binder struct{ table string }
)

// Storage streams the trips of one city in start time order
type Storage interface {
	EachTrip(ctx context.Context, city string, fn func(trip.Attrs) error) error
}

// NewCH constructs a binder for table ("trips" or "db.trips")
func NewCH(table string) (repokit.Binder[Storage], error) {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, perr.WithField(perr.InvalidArgf("invalid table name %q", table), "table")
	}
	return binder{table: table}, nil
}

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) Storage {
	parts := strings.Split(b.table, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return &ch{q: repokit.Tagged(q, "chsource.trips"), sql: fmt.Sprintf(selectTrips, strings.Join(parts, "."))}
}

// EachTrip implements Storage
func (s *ch) EachTrip(ctx context.Context, city string, fn func(trip.Attrs) error) error {
	return store.Each(ctx, s.q, scanTrip, fn, s.sql, city)
}

// scanTrip reads one row; ClickHouse scans are strictly typed, so birth_year
// (Nullable(Int32)) lands in an *int32 before widening
func scanTrip(r repokit.Row) (trip.Attrs, error) {
	var (
		a     trip.Attrs
		birth *int32
	)
	err := r.Scan(&a.Start, &a.End, &a.Duration, &a.StartStation, &a.EndStation, &a.UserType, &a.Gender, &birth)
	if err != nil {
		return trip.Attrs{}, err
	}
	if birth != nil {
		y := int64(*birth)
		a.BirthYear = &y
	}
	return a, nil
}
