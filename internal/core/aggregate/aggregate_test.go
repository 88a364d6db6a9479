package aggregate

import (
	"math"
	"testing"
	"time"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/testkit"
)

type row struct {
	start    string
	duration int64
	from, to string
	user     string
	gender   string
	year     int64
}

func build(rows ...row) *trip.Store {
	b := trip.NewBuilder("chicago", len(rows))
	for _, r := range rows {
		st, err := time.Parse("2006-01-02 15:04:05", r.start)
		if err != nil {
			panic(err)
		}
		a := trip.Attrs{
			Start:        st,
			End:          st.Add(time.Duration(r.duration) * time.Second),
			Duration:     r.duration,
			StartStation: r.from,
			EndStation:   r.to,
			UserType:     r.user,
		}
		if r.gender != "" {
			g := r.gender
			a.Gender = &g
		}
		if r.year != 0 {
			y := r.year
			a.BirthYear = &y
		}
		b.Add(a)
	}
	return b.Store()
}

func TestMostFrequent_FirstSeenTieBreak(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", duration: 10, user: "Subscriber"}, // Monday
		row{start: "2017-01-03 08:00:00", duration: 20, user: "Subscriber"}, // Tuesday
		row{start: "2017-02-06 08:00:00", duration: 30, user: "Customer"},   // February
	)
	v, err := filter.Apply(st, filter.Criteria{City: filter.Chicago, Month: filter.Month(time.January)})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	m, err := MostFrequent(v.All(), trip.DayOfWeek)
	if err != nil {
		t.Fatalf("most frequent: %v", err)
	}
	testkit.MustEqual(t, m.Value, trip.WeekdayOf(time.Monday), "mode")
	testkit.MustEqual(t, m.Count, 1, "count")

	hour, _ := MostFrequent(v.All(), trip.StartHour)
	testkit.MustEqual(t, hour.Value.String(), "8", "hour")
	testkit.MustEqual(t, hour.Count, 2, "hour count")
}

func TestMostFrequent_Errors(t *testing.T) {
	t.Parallel()
	empty := build()
	if _, err := MostFrequent(empty.All(), trip.Month); !perr.IsCode(err, perr.ErrorCodeEmptyDataset) {
		t.Fatalf("want empty dataset, got %v", err)
	}

	noGender := build(row{start: "2017-01-02 08:00:00", duration: 1, user: "Customer"})
	_, err := MostFrequent(noGender.All(), trip.Gender)
	if !perr.IsCode(err, perr.ErrorCodeMissingField) {
		t.Fatalf("want missing field, got %v", err)
	}
	e, _ := perr.As(err)
	testkit.MustEqual(t, e.Field(), "Gender", "field")
}

func TestCountWhere(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", user: "Subscriber"},
		row{start: "2017-01-02 09:00:00", user: "Customer"},
		row{start: "2017-01-02 10:00:00", user: "Subscriber"},
	)
	testkit.MustEqual(t, CountWhere(st.All(), trip.UserType, trip.String("Subscriber")), 2, "subscribers")
	testkit.MustEqual(t, CountWhere(st.All(), trip.Gender, trip.String("Male")), 0, "absent gender")
}

func TestSumMean_HundredRecords(t *testing.T) {
	t.Parallel()
	rows := make([]row, 100)
	var want int64
	for i := range rows {
		d := int64(i*37 + 11)
		want += d
		rows[i] = row{start: "2017-03-01 12:00:00", duration: d, user: "Subscriber"}
	}
	st := build(rows...)

	sum, err := Sum(st.All(), trip.TripDuration)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	testkit.MustEqual(t, sum, want, "sum")

	mean, err := Mean(st.All(), trip.TripDuration)
	if err != nil {
		t.Fatalf("mean: %v", err)
	}
	if math.Abs(mean-float64(want)/100) > 1e-9 {
		t.Fatalf("mean = %f want %f", mean, float64(want)/100)
	}
}

func TestSumMean_Errors(t *testing.T) {
	t.Parallel()
	if _, err := Mean(build().All(), trip.TripDuration); !perr.IsCode(err, perr.ErrorCodeEmptyDataset) {
		t.Fatalf("want empty dataset, got %v", err)
	}
	st := build(row{start: "2017-01-02 08:00:00", duration: 5, user: "Customer"})
	if _, err := Sum(st.All(), trip.StartStation); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	if _, err := Mean(st.All(), trip.BirthYear); !perr.IsCode(err, perr.ErrorCodeMissingField) {
		t.Fatalf("want missing field, got %v", err)
	}
}

func TestValueCounts(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", user: "Customer", gender: "Male"},
		row{start: "2017-01-02 08:00:00", user: "Subscriber"},
		row{start: "2017-01-02 08:00:00", user: "Subscriber", gender: "Female"},
		row{start: "2017-01-02 08:00:00", user: "Dependent", gender: "Male"},
		row{start: "2017-01-02 08:00:00", user: "Subscriber", gender: "Female"},
	)

	got, err := ValueCounts(st.All(), trip.UserType)
	if err != nil {
		t.Fatalf("value counts: %v", err)
	}
	want := []Count{
		{trip.String("Subscriber"), 3},
		{trip.String("Customer"), 1},
		{trip.String("Dependent"), 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	total := 0
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v want %+v", i, got[i], want[i])
		}
		if got[i].Count == 0 {
			t.Fatal("zero count entry")
		}
		total += got[i].Count
	}
	testkit.MustEqual(t, total, st.Len(), "counts cover the view")

	genders, err := ValueCounts(st.All(), trip.Gender)
	if err != nil {
		t.Fatalf("genders: %v", err)
	}
	testkit.MustEqual(t, len(genders), 2, "absent skipped")
	testkit.MustEqual(t, genders[0].Value.String(), "Male", "first seen wins tie")
}

func TestMinMaxMode(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", user: "Subscriber", year: 1990},
		row{start: "2017-01-02 08:00:00", user: "Subscriber"},
		row{start: "2017-01-02 08:00:00", user: "Subscriber", year: 1975},
		row{start: "2017-01-02 08:00:00", user: "Subscriber", year: 1990},
		row{start: "2017-01-02 08:00:00", user: "Subscriber", year: 2001},
	)
	got, err := MinMaxMode(st.All(), trip.BirthYear)
	if err != nil {
		t.Fatalf("min max mode: %v", err)
	}
	testkit.MustEqual(t, got, Extremes{Min: 1975, Max: 2001, Mode: 1990}, "extremes")

	noYears := build(row{start: "2017-01-02 08:00:00", user: "Customer"})
	if _, err := MinMaxMode(noYears.All(), trip.BirthYear); !perr.IsCode(err, perr.ErrorCodeMissingField) {
		t.Fatalf("want missing field, got %v", err)
	}
	if _, err := MinMaxMode(build().All(), trip.BirthYear); !perr.IsCode(err, perr.ErrorCodeEmptyDataset) {
		t.Fatalf("want empty dataset, got %v", err)
	}
}

func TestMostFrequentPair(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", from: "A", to: "B"},
		row{start: "2017-01-02 08:00:00", from: "C", to: "D"},
		row{start: "2017-01-02 08:00:00", from: "A", to: "B"},
		row{start: "2017-01-02 08:00:00", from: "A", to: "C"},
	)
	p, err := MostFrequentPair(st.All(), trip.StartStation, trip.EndStation)
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	testkit.MustEqual(t, p, Pair{First: "A", Second: "B", Count: 2}, "pair")

	if _, err := MostFrequentPair(build().All(), trip.StartStation, trip.EndStation); !perr.IsCode(err, perr.ErrorCodeEmptyDataset) {
		t.Fatalf("want empty dataset, got %v", err)
	}
}

func TestMostFrequentPair_SeparatorInValue(t *testing.T) {
	t.Parallel()
	st := build(
		row{start: "2017-01-02 08:00:00", from: "Lake Shore Dr - Monroe St", to: "Union Station"},
		row{start: "2017-01-02 08:00:00", from: "Lake Shore Dr - Monroe St", to: "Union Station"},
	)
	p, err := MostFrequentPair(st.All(), trip.StartStation, trip.EndStation)
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	// the split happens on the first separator, so the halves no longer match any record
	testkit.MustEqual(t, p.First, "Lake Shore Dr", "first")
	testkit.MustEqual(t, p.Second, "Monroe St", "second")
	testkit.MustEqual(t, p.Count, 0, "recomputed count")
}
