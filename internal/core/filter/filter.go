// Package filter narrows a trip store to the records matching a city, month and day selection
package filter

import (
	"fmt"
	"iter"

	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
)

// Criteria is one selection; zero Month and Day mean no filter on that axis
type Criteria struct {
	City  City
	Month Month
	Day   Day
}

// Validate checks every axis against the known enumerations
func (c Criteria) Validate() error {
	switch {
	case !c.City.Valid():
		return perr.WithField(perr.InvalidCriteriaf("unknown city %d", c.City), "city")
	case !c.Month.Valid():
		return perr.WithField(perr.InvalidCriteriaf("month %d outside January..June", c.Month), "month")
	case !c.Day.Valid():
		return perr.WithField(perr.InvalidCriteriaf("unknown day %d", c.Day), "day")
	}
	return nil
}

func (c Criteria) String() string {
	return fmt.Sprintf("%s, month=%s, day=%s", c.City, c.Month, c.Day)
}

// Match reports whether r satisfies the month and day predicates
func (c Criteria) Match(r trip.Record) bool {
	if c.Month != AllMonths && r.Month() != c.Month.Time() {
		return false
	}
	if c.Day != AllDays && r.Weekday() != c.Day.Weekday() {
		return false
	}
	return true
}

// View is the ordered subsequence of a store matching some criteria
// It holds no records of its own; every range re-reads the store
type View struct {
	src  *trip.Store
	crit Criteria
}

// Apply builds the view of st selected by c
func Apply(st *trip.Store, c Criteria) (View, error) {
	if err := c.Validate(); err != nil {
		return View{}, perr.WithOp(err, "filter.apply")
	}
	return View{src: st, crit: c}, nil
}

// Criteria returns the selection the view was built with
func (v View) Criteria() Criteria { return v.crit }

// All yields matching records in store order
func (v View) All() iter.Seq[trip.Record] {
	return func(yield func(trip.Record) bool) {
		for r := range v.src.All() {
			if !v.crit.Match(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Len counts matching records
func (v View) Len() int {
	n := 0
	for range v.All() {
		n++
	}
	return n
}

func invalid(what, input string) error {
	return perr.WithField(perr.InvalidCriteriaf("%q is not a valid %s", input, what), what)
}
