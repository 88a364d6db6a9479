package console

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"bikeshare/internal/core/aggregate"
	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/testkit"
	explore "bikeshare/internal/services/explore/domain"
)

func report(timings bool) explore.Report {
	missing := perr.WithField(perr.MissingFieldf("no values"), "Gender")
	return explore.Report{
		Criteria: filter.Criteria{City: filter.Washington, Month: 1},
		Records:  3,
		Timings:  timings,
		Time: explore.Group[explore.TimeStats]{
			Title:   "The Most Frequent Times of Travel",
			Elapsed: 1500 * time.Microsecond,
			Stats: explore.TimeStats{
				Month: explore.Of(aggregate.Mode{Value: trip.MonthOf(time.January), Count: 3}, nil),
				Day:   explore.Of(aggregate.Mode{Value: trip.WeekdayOf(time.Monday), Count: 2}, nil),
				Hour:  explore.Of(aggregate.Mode{Value: trip.Int(8), Count: 2}, nil),
			},
		},
		Station: explore.Group[explore.StationStats]{
			Title: "The Most Popular Stations and Trip",
			Stats: explore.StationStats{
				Start: explore.Of(aggregate.Mode{Value: trip.String("A"), Count: 2}, nil),
				End:   explore.Of(aggregate.Mode{Value: trip.String("B"), Count: 2}, nil),
				Trip:  explore.Of(aggregate.Pair{First: "A", Second: "B", Count: 2}, nil),
			},
		},
		Duration: explore.Group[explore.DurationStats]{
			Title: "Trip Duration",
			Stats: explore.DurationStats{
				Total: explore.Of(int64(600), nil),
				Mean:  explore.Of(200.5, nil),
			},
		},
		User: explore.Group[explore.UserStats]{
			Title: "User Stats",
			Stats: explore.UserStats{
				Types: explore.Of([]aggregate.Count{
					{Value: trip.String("Subscriber"), Count: 2},
					{Value: trip.String("Customer"), Count: 1},
				}, nil),
				Genders:    explore.Stat[[]aggregate.Count]{Err: missing},
				BirthYears: explore.Stat[aggregate.Extremes]{Err: perr.WithField(perr.MissingFieldf("no values"), "Birth Year")},
			},
		},
	}
}

func page() paginate.Page[trip.Record] {
	b := trip.NewBuilder("chicago", 2)
	st := time.Date(2017, 1, 2, 9, 7, 57, 0, time.UTC)
	g, y := "Male", int64(1990)
	b.Add(trip.Attrs{Start: st, End: st.Add(time.Minute), Duration: 60, StartStation: "A", EndStation: "B", UserType: "Customer"})
	b.Add(trip.Attrs{Start: st, End: st.Add(time.Minute), Duration: 61, StartStation: "B", EndStation: "C", UserType: "Subscriber", Gender: &g, BirthYear: &y})
	s := b.Store()
	return paginate.Page[trip.Record]{Number: 1, Offset: 0, Items: []trip.Record{s.At(0), s.At(1)}}
}

func TestText_Report(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := NewText(&out).Report(context.Background(), report(true)); err != nil {
		t.Fatalf("report: %v", err)
	}
	s := out.String()
	for _, want := range []string{
		"\nCalculating The Most Frequent Times of Travel...\n\n",
		"The most common month is January with a count of 3.\n",
		"The most common day is Monday with a count of 2.\n",
		"The most common start hour is 8 with a count of 2.\n",
		"\nThis took 0.0015 seconds.\n",
		"The most common start station is A with a count of 2.\n",
		"The most frequent combination of start station and end station is A - B with a count of 2.\n",
		"The total amount of travel time is 600.\n",
		"The average amount of travel time is 200.5.\n",
		"The amount of Subscriber(s) is 2.\nThe amount of Customer(s) is 1.\n",
		"No Gender data for this selection.\n",
		"No Birth Year data for this selection.\n",
	} {
		testkit.MustContain(t, s, want)
	}
	testkit.MustEqual(t, strings.Count(s, strings.Repeat("-", 40)+"\n"), 4, "separators")
}

func TestText_ReportWithoutTimings(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := NewText(&out).Report(context.Background(), report(false)); err != nil {
		t.Fatalf("report: %v", err)
	}
	if strings.Contains(out.String(), "This took") {
		t.Fatal("timing lines should be off")
	}
}

func TestText_Page(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := NewText(&out).Page(context.Background(), page()); err != nil {
		t.Fatalf("page: %v", err)
	}
	s := out.String()
	testkit.MustContain(t, s, "\nRow 0\n\nStart Time: 2017-01-02 09:07:57\nEnd Time: 2017-01-02 09:08:57\nTrip Duration: 60\n")
	testkit.MustContain(t, s, "User Type: Customer\nGender: n/a\nBirth Year: n/a\n")
	testkit.MustContain(t, s, "\nRow 1\n")
	testkit.MustContain(t, s, "Gender: Male\nBirth Year: 1990\n")
}

func TestText_Problem(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want string
	}{
		{perr.EmptyDatasetf("no trips for Chicago"), "no data for this selection."},
		{perr.NotFoundf("no data file for Chicago"), "no data file for Chicago"},
		{perr.WithField(perr.InvalidCriteriaf("unknown month 9"), "month"), "unknown month 9"},
	}
	for _, c := range cases {
		var out bytes.Buffer
		if err := NewText(&out).Problem(context.Background(), c.err); err != nil {
			t.Fatalf("problem: %v", err)
		}
		testkit.MustContain(t, out.String(), "\n"+c.want+"\n")
	}
}

func TestJSON_Report(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := NewJSON(&out).Report(context.Background(), report(false)); err != nil {
		t.Fatalf("report: %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Criteria struct {
			City, Month, Day string
		} `json:"criteria"`
		Records int `json:"records"`
		Time    struct {
			ElapsedSeconds *float64 `json:"elapsed_seconds"`
			Stats          struct {
				Month struct{ Value countDoc } `json:"month"`
				Hour  struct{ Value countDoc } `json:"hour"`
			} `json:"stats"`
		} `json:"time"`
		Station struct {
			Stats struct {
				Trip struct{ Value pairDoc } `json:"trip"`
			} `json:"stats"`
		} `json:"station"`
		User struct {
			Stats struct {
				Types   struct{ Value []countDoc } `json:"types"`
				Genders struct {
					Value *[]countDoc `json:"value"`
					Error string      `json:"error"`
				} `json:"genders"`
			} `json:"stats"`
		} `json:"user"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	testkit.MustEqual(t, doc.Type, "report", "type")
	testkit.MustEqual(t, doc.Criteria.City, "Washington", "city")
	testkit.MustEqual(t, doc.Criteria.Month, "January", "month")
	testkit.MustEqual(t, doc.Records, 3, "records")
	if doc.Time.ElapsedSeconds != nil {
		t.Fatal("elapsed should be omitted without timings")
	}
	testkit.MustEqual(t, doc.Time.Stats.Month.Value.Value.(string), "January", "month mode")
	testkit.MustEqual(t, doc.Time.Stats.Hour.Value.Value.(float64), 8.0, "hour stays numeric")
	testkit.MustEqual(t, doc.Station.Stats.Trip.Value, pairDoc{Start: "A", End: "B", Count: 2}, "trip")
	testkit.MustEqual(t, len(doc.User.Stats.Types.Value), 2, "types")
	if doc.User.Stats.Genders.Value != nil || doc.User.Stats.Genders.Error == "" {
		t.Fatalf("genders should carry an error, got %+v", doc.User.Stats.Genders)
	}
}

func TestJSON_PageAndProblem(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	r := NewJSON(&out)
	if err := r.Page(context.Background(), page()); err != nil {
		t.Fatalf("page: %v", err)
	}
	if err := r.Problem(context.Background(), perr.EmptyDatasetf("none")); err != nil {
		t.Fatalf("problem: %v", err)
	}

	dec := json.NewDecoder(&out)
	var pg pageDoc
	if err := dec.Decode(&pg); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	testkit.MustEqual(t, pg.Type, "page", "type")
	testkit.MustEqual(t, len(pg.Rows), 2, "rows")
	if pg.Rows[0].Gender != nil || pg.Rows[0].BirthYear != nil {
		t.Fatal("absent values should be omitted")
	}
	testkit.MustEqual(t, *pg.Rows[1].BirthYear, int64(1990), "birth year")
	testkit.MustEqual(t, pg.Rows[1].StartTime, "2017-01-02 09:07:57", "start time")

	var pb problemDoc
	if err := dec.Decode(&pb); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	testkit.MustEqual(t, pb, problemDoc{Type: "problem", Code: "empty_dataset", Message: noData + "."}, "problem")
}
