// Package domain defines the report types of the explore service
package domain

import (
	"time"

	"bikeshare/internal/core/aggregate"
	"bikeshare/internal/core/filter"
)

// Stat is one computed statistic; Err is set instead of Value when it could not be computed
type Stat[T any] struct {
	Value T
	Err   error
}

// OK reports whether the statistic has a value
func (s Stat[T]) OK() bool { return s.Err == nil }

// Of builds a Stat from a value/error pair
func Of[T any](v T, err error) Stat[T] {
	if err != nil {
		return Stat[T]{Err: err}
	}
	return Stat[T]{Value: v}
}

// Group is one block of the report together with the time it took
type Group[T any] struct {
	Title   string
	Elapsed time.Duration
	Stats   T
}

// TimeStats are the most frequent times of travel
type TimeStats struct {
	Month Stat[aggregate.Mode]
	Day   Stat[aggregate.Mode]
	Hour  Stat[aggregate.Mode]
}

// StationStats are the most popular stations and trip
type StationStats struct {
	Start Stat[aggregate.Mode]
	End   Stat[aggregate.Mode]
	Trip  Stat[aggregate.Pair]
}

// DurationStats are total and average travel time in seconds
type DurationStats struct {
	Total Stat[int64]
	Mean  Stat[float64]
}

// UserStats describe who rode
type UserStats struct {
	Types      Stat[[]aggregate.Count]
	Genders    Stat[[]aggregate.Count]
	BirthYears Stat[aggregate.Extremes]
}

// Report is the full set of statistics for one selection
type Report struct {
	Criteria filter.Criteria
	Records  int
	Timings  bool

	Time     Group[TimeStats]
	Station  Group[StationStats]
	Duration Group[DurationStats]
	User     Group[UserStats]
}
