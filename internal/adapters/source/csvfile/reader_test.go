package csvfile

import (
	"errors"
	"io"
	"strings"
	"testing"

	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/testkit"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610.0,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,,,
`

const washingtonCSV = "\ufeff" + `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
`

func TestReader_HeaderMappingAndCells(t *testing.T) {
	t.Parallel()
	rd, err := NewReader(strings.NewReader(chicagoCSV))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if !rd.HasColumn(trip.Gender) || !rd.HasColumn(trip.BirthYear) {
		t.Fatal("optional columns should be mapped")
	}

	a, err := rd.Next()
	if err != nil {
		t.Fatalf("row 1: %v", err)
	}
	testkit.MustEqual(t, a.Duration, int64(321), "duration")
	testkit.MustEqual(t, a.StartStation, "Wood St & Hubbard St", "start station")
	testkit.MustEqual(t, a.Start.Hour(), 15, "start hour")
	if a.Gender == nil || *a.Gender != "Male" || a.BirthYear == nil || *a.BirthYear != 1992 {
		t.Fatalf("optional cells = %v %v", a.Gender, a.BirthYear)
	}

	a, _ = rd.Next()
	testkit.MustEqual(t, a.Duration, int64(1610), "float duration")
	if a.BirthYear != nil {
		t.Fatal("empty birth year should be absent")
	}

	a, _ = rd.Next()
	if a.Gender != nil || a.UserType != "" {
		t.Fatalf("blank cells = %v %q", a.Gender, a.UserType)
	}

	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("want EOF, got %v", err)
	}
	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("EOF should be sticky, got %v", err)
	}
	testkit.MustEqual(t, rd.Rows(), 3, "rows")
}

func TestReader_MissingOptionalColumns(t *testing.T) {
	t.Parallel()
	rd, err := NewReader(strings.NewReader(washingtonCSV))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if rd.HasColumn(trip.Gender) || rd.HasColumn(trip.BirthYear) {
		t.Fatal("washington has no user columns")
	}
	a, err := rd.Next()
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	testkit.MustEqual(t, a.Duration, int64(489), "rounded duration")
	if a.Gender != nil || a.BirthYear != nil {
		t.Fatal("absent columns should give absent values")
	}
}

func TestReader_HeaderErrors(t *testing.T) {
	t.Parallel()
	if _, err := NewReader(strings.NewReader("")); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty file: %v", err)
	}
	_, err := NewReader(strings.NewReader("Start Time,End Time\n"))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing columns: %v", err)
	}
	e, _ := perr.As(err)
	testkit.MustEqual(t, e.Field(), "Trip Duration", "first missing column")
}

func TestReader_MalformedRows(t *testing.T) {
	t.Parallel()
	header := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n"
	cases := []struct {
		name string
		row  string
		want string
	}{
		{"bad time", "yesterday,2017-01-01 00:00:00,5,A,B,Customer\n", `line 2 column "Start Time"`},
		{"bad duration", "2017-01-01 00:00:00,2017-01-01 00:00:05,five,A,B,Customer\n", `line 2 column "Trip Duration"`},
		{"missing duration", "2017-01-01 00:00:00,2017-01-01 00:00:05,,A,B,Customer\n", `column "Trip Duration"`},
		{"field count", "2017-01-01 00:00:00,2017-01-01 00:00:05,5\n", "line 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rd, err := NewReader(strings.NewReader(header + c.row))
			if err != nil {
				t.Fatalf("new reader: %v", err)
			}
			_, err = rd.Next()
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("want invalid argument, got %v", err)
			}
			testkit.MustContain(t, err.Error(), c.want)
		})
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()
	cases := map[string]int64{"42": 42, "1039.0": 1039, "489.066": 489, "2.5": 3, "-3": -3}
	for in, want := range cases {
		got, err := number(in)
		if err != nil || got != want {
			t.Fatalf("number(%q) = %d,%v want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "NaN", "Inf"} {
		if _, err := number(in); err == nil {
			t.Fatalf("number(%q) should fail", in)
		}
	}
}
