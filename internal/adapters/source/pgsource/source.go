package pgsource

import (
	"context"
	"errors"
	"time"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/trip"
	"bikeshare/internal/modkit/repokit"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"
)

// Source loads city stores from Postgres
type Source struct {
	st Storage
}

// New binds a source to q reading table
func New(q repokit.Queryer, table string) *Source {
	return &Source{st: repokit.MustBind(NewPG(table), q)}
}

// Load reads every trip of city
func (s *Source) Load(ctx context.Context, city filter.City) (*trip.Store, error) {
	if !city.Valid() {
		return nil, perr.WithField(perr.InvalidCriteriaf("unknown city %d", city), "city")
	}
	start := time.Now()
	b := trip.NewBuilder(city.Key(), 0)
	err := s.st.EachTrip(ctx, city.Key(), func(a trip.Attrs) error {
		b.Add(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, perr.WithOp(perr.FromPostgresf(err, "load trips for %s", city), "pgsource.load")
	}
	if b.Len() == 0 {
		return nil, perr.NotFoundf("no trips for %s", city)
	}
	logger.C(ctx).Info().
		Int("rows", b.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("pgsource: loaded")
	return b.Store(), nil
}
