// Package service builds the explore report from aggregate calls
package service

import (
	"context"
	"iter"
	"time"

	"bikeshare/internal/core/aggregate"
	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"
	dom "bikeshare/internal/services/explore/domain"
)

// Config for the explore service
type Config struct {
	// Timings controls whether the renderer prints the per-group elapsed time
	Timings bool
}

// Service implements domain.ReportPort
type Service struct {
	cfg Config
	now func() time.Time
}

// New constructs a new explore service
func New(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

var _ dom.ReportPort = (*Service)(nil)

// Build implements domain.ReportPort
// An empty view is an EmptyDataset error; a missing field only fails the statistics that need it
func (s *Service) Build(ctx context.Context, v filter.View) (dom.Report, error) {
	rep := dom.Report{Criteria: v.Criteria(), Records: v.Len(), Timings: s.cfg.Timings}
	if rep.Records == 0 {
		return rep, perr.WithOp(perr.EmptyDatasetf("no trips for %s", rep.Criteria), "explore.build")
	}
	recs := v.All()

	rep.Time = timed(s, "The Most Frequent Times of Travel", func() dom.TimeStats { return timeStats(recs) })
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	rep.Station = timed(s, "The Most Popular Stations and Trip", func() dom.StationStats { return stationStats(recs) })
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	rep.Duration = timed(s, "Trip Duration", func() dom.DurationStats { return durationStats(recs) })
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	rep.User = timed(s, "User Stats", func() dom.UserStats { return userStats(recs) })

	l := logger.C(ctx).With().Str("mod", "explore").Logger()
	l.Debug().
		Int("records", rep.Records).
		Dur("time_stats", rep.Time.Elapsed).
		Dur("station_stats", rep.Station.Elapsed).
		Dur("duration_stats", rep.Duration.Elapsed).
		Dur("user_stats", rep.User.Elapsed).
		Msg("report built")
	return rep, nil
}

func timed[T any](s *Service, title string, fn func() T) dom.Group[T] {
	start := s.now()
	stats := fn()
	return dom.Group[T]{Title: title, Elapsed: s.now().Sub(start), Stats: stats}
}

func timeStats(recs iter.Seq[trip.Record]) dom.TimeStats {
	return dom.TimeStats{
		Month: dom.Of(aggregate.MostFrequent(recs, trip.Month)),
		Day:   dom.Of(aggregate.MostFrequent(recs, trip.DayOfWeek)),
		Hour:  dom.Of(aggregate.MostFrequent(recs, trip.StartHour)),
	}
}

func stationStats(recs iter.Seq[trip.Record]) dom.StationStats {
	return dom.StationStats{
		Start: dom.Of(aggregate.MostFrequent(recs, trip.StartStation)),
		End:   dom.Of(aggregate.MostFrequent(recs, trip.EndStation)),
		Trip:  dom.Of(aggregate.MostFrequentPair(recs, trip.StartStation, trip.EndStation)),
	}
}

func durationStats(recs iter.Seq[trip.Record]) dom.DurationStats {
	return dom.DurationStats{
		Total: dom.Of(aggregate.Sum(recs, trip.TripDuration)),
		Mean:  dom.Of(aggregate.Mean(recs, trip.TripDuration)),
	}
}

func userStats(recs iter.Seq[trip.Record]) dom.UserStats {
	return dom.UserStats{
		Types:      dom.Of(aggregate.ValueCounts(recs, trip.UserType)),
		Genders:    dom.Of(aggregate.ValueCounts(recs, trip.Gender)),
		BirthYears: dom.Of(aggregate.MinMaxMode(recs, trip.BirthYear)),
	}
}
