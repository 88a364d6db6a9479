package chsource

import (
	"context"
	"errors"
	"time"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/trip"
	"bikeshare/internal/modkit/repokit"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// server error codes that mean the table is not there
const (
	codeUnknownTable    = 60
	codeUnknownDatabase = 81
)

// Source loads city stores from ClickHouse
type Source struct {
	st Storage
}

// New binds a source to q reading table
func New(q repokit.Queryer, table string) (*Source, error) {
	b, err := NewCH(table)
	if err != nil {
		return nil, err
	}
	return &Source{st: repokit.MustBind(b, q)}, nil
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
		return nil, perr.WithOp(fromClickHouse(err, city), "chsource.load")
	}
	if b.Len() == 0 {
		return nil, perr.NotFoundf("no trips for %s", city)
	}
	logger.C(ctx).Info().
		Int("rows", b.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("chsource: loaded")
	return b.Store(), nil
}

func fromClickHouse(err error, city filter.City) error {
	var ex *clickhouse.Exception
	if errors.As(err, &ex) {
		switch ex.Code {
		case codeUnknownTable, codeUnknownDatabase:
			return perr.Wrapf(err, perr.ErrorCodeNotFound, "load trips for %s", city)
		}
	}
	return perr.Wrapf(err, perr.ErrorCodeSource, "load trips for %s", city)
}
