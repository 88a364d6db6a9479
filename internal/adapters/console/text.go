package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bikeshare/internal/core/aggregate"
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	ptime "bikeshare/internal/platform/time"
	explore "bikeshare/internal/services/explore/domain"
)

// noData is shown for an empty selection
const noData = "no data for this selection"

// absent stands in for a missing optional value
const absent = "n/a"

// Text writes reports and pages as the human readable lines of the interactive explorer
type Text struct {
	w io.Writer
}

// NewText returns a text renderer on w
func NewText(w io.Writer) *Text { return &Text{w: w} }

// Report implements the session Renderer port
func (t *Text) Report(_ context.Context, rep explore.Report) error {
	var b strings.Builder

	group(&b, rep.Time.Title, rep.Timings, rep.Time.Elapsed, func() {
		s := rep.Time.Stats
		modeLine(&b, "month", s.Month)
		modeLine(&b, "day", s.Day)
		modeLine(&b, "start hour", s.Hour)
	})
	group(&b, rep.Station.Title, rep.Timings, rep.Station.Elapsed, func() {
		s := rep.Station.Stats
		modeLine(&b, "start station", s.Start)
		modeLine(&b, "end station", s.End)
		if !s.Trip.OK() {
			problemLine(&b, s.Trip.Err)
			return
		}
		p := s.Trip.Value
		fmt.Fprintf(&b, "The most frequent combination of start station and end station is %s%s%s with a count of %d.\n",
			p.First, aggregate.PairSeparator, p.Second, p.Count)
	})
	group(&b, rep.Duration.Title, rep.Timings, rep.Duration.Elapsed, func() {
		s := rep.Duration.Stats
		if s.Total.OK() {
			fmt.Fprintf(&b, "The total amount of travel time is %d.\n", s.Total.Value)
		} else {
			problemLine(&b, s.Total.Err)
		}
		if s.Mean.OK() {
			fmt.Fprintf(&b, "The average amount of travel time is %s.\n", strconv.FormatFloat(s.Mean.Value, 'f', -1, 64))
		} else {
			problemLine(&b, s.Mean.Err)
		}
	})
	group(&b, rep.User.Title, rep.Timings, rep.User.Elapsed, func() {
		s := rep.User.Stats
		countLines(&b, "The amount of %s(s) is %d.\n", s.Types)
		b.WriteString("\n")
		countLines(&b, "The amount of %ss is %d.\n", s.Genders)
		if !s.BirthYears.OK() {
			b.WriteString("\n")
			problemLine(&b, s.BirthYears.Err)
			return
		}
		y := s.BirthYears.Value
		fmt.Fprintf(&b, "\nThe earliest birth year is %d.\n", y.Min)
		fmt.Fprintf(&b, "The most recent birth year is %d.\n", y.Max)
		fmt.Fprintf(&b, "The most common birth year is %d.\n", y.Mode)
	})

	_, err := io.WriteString(t.w, b.String())
	return err
}

// Page implements the session Renderer port
func (t *Text) Page(_ context.Context, p paginate.Page[trip.Record]) error {
	var b strings.Builder
	for _, r := range p.Items {
		fmt.Fprintf(&b, "\nRow %d\n", r.Index())
		fmt.Fprintf(&b, "\nStart Time: %s\n", r.Start().Format(ptime.Layout))
		fmt.Fprintf(&b, "End Time: %s\n", r.End().Format(ptime.Layout))
		fmt.Fprintf(&b, "Trip Duration: %d\n", r.Duration())
		fmt.Fprintf(&b, "Start Station: %s\n", r.StartStation())
		fmt.Fprintf(&b, "End Station: %s\n", r.EndStation())
		fmt.Fprintf(&b, "User Type: %s\n", optional(r.Get(trip.UserType)))
		fmt.Fprintf(&b, "Gender: %s\n", optional(r.Get(trip.Gender)))
		fmt.Fprintf(&b, "Birth Year: %s\n", optional(r.Get(trip.BirthYear)))
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

// Problem implements the session Renderer port
func (t *Text) Problem(_ context.Context, err error) error {
	_, werr := io.WriteString(t.w, "\n"+describe(err)+"\n"+separator)
	return werr
}

func group(b *strings.Builder, title string, timings bool, elapsed time.Duration, body func()) {
	fmt.Fprintf(b, "\nCalculating %s...\n\n", title)
	body()
	if timings {
		fmt.Fprintf(b, "\nThis took %s seconds.\n", strconv.FormatFloat(ptime.Seconds(elapsed), 'f', -1, 64))
	}
	b.WriteString(separator)
}

func modeLine(b *strings.Builder, what string, s explore.Stat[aggregate.Mode]) {
	if !s.OK() {
		problemLine(b, s.Err)
		return
	}
	fmt.Fprintf(b, "The most common %s is %s with a count of %d.\n", what, s.Value.Value, s.Value.Count)
}

func countLines(b *strings.Builder, format string, s explore.Stat[[]aggregate.Count]) {
	if !s.OK() {
		problemLine(b, s.Err)
		return
	}
	for _, c := range s.Value {
		fmt.Fprintf(b, format, c.Value, c.Count)
	}
}

func problemLine(b *strings.Builder, err error) {
	b.WriteString(describe(err))
	b.WriteString("\n")
}

// describe turns an error into the sentence shown to the user
func describe(err error) string {
	e, ok := perr.As(err)
	if !ok {
		return err.Error()
	}
	switch e.Code() {
	case perr.ErrorCodeEmptyDataset:
		return noData + "."
	case perr.ErrorCodeMissingField:
		if e.Field() != "" {
			return fmt.Sprintf("No %s data for this selection.", e.Field())
		}
	}
	return e.Message()
}

func optional(v trip.Value, ok bool) string {
	if !ok {
		return absent
	}
	return v.String()
}
