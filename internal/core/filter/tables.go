package filter

import (
	"time"

	pstrings "bikeshare/internal/platform/strings"
)

// City selects one of the bundled datasets
type City uint8

const (
	CityUnknown City = iota
	Chicago
	NewYorkCity
	Washington
)

type cityInfo struct {
	name string
	file string
	key  string
}

var cityTable = [...]cityInfo{
	Chicago:     {name: "Chicago", file: "chicago.csv", key: "chicago"},
	NewYorkCity: {name: "New York City", file: "new_york_city.csv", key: "new_york_city"},
	Washington:  {name: "Washington", file: "washington.csv", key: "washington"},
}

// Cities lists the known cities in prompt order
func Cities() []City { return []City{Chicago, NewYorkCity, Washington} }

// Valid reports whether c is a known city
func (c City) Valid() bool { return c > CityUnknown && int(c) < len(cityTable) }

// String is the display name
func (c City) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return cityTable[c].name
}

// File is the data file name for the city
func (c City) File() string {
	if !c.Valid() {
		return ""
	}
	return cityTable[c].file
}

// Key is the city identifier used by database sources
func (c City) Key() string {
	if !c.Valid() {
		return ""
	}
	return cityTable[c].key
}

// Month is a filter month; the zero value means all months
type Month uint8

// AllMonths disables the month filter
const AllMonths Month = 0

// lastMonth is the final month the datasets cover
const lastMonth = Month(time.June)

// Months lists the selectable months in order
func Months() []Month {
	out := make([]Month, 0, lastMonth)
	for m := Month(time.January); m <= lastMonth; m++ {
		out = append(out, m)
	}
	return out
}

// Valid reports whether m is all months or a covered month
func (m Month) Valid() bool { return m <= lastMonth }

// Time converts m to a calendar month, 0 for all months
func (m Month) Time() time.Month { return time.Month(m) }

func (m Month) String() string {
	if m == AllMonths {
		return "all"
	}
	return time.Month(m).String()
}

// Day is a filter weekday numbered Monday=1..Sunday=7; the zero value means all days
type Day uint8

// AllDays disables the day filter
const AllDays Day = 0

// DayOf converts a calendar weekday to a Day
func DayOf(w time.Weekday) Day {
	if w == time.Sunday {
		return 7
	}
	return Day(w)
}

// Days lists the selectable days from Monday to Sunday
func Days() []Day { return []Day{1, 2, 3, 4, 5, 6, 7} }

// Valid reports whether d is all days or a weekday
func (d Day) Valid() bool { return d <= 7 }

// Weekday converts d to a calendar weekday; only meaningful for d != AllDays
func (d Day) Weekday() time.Weekday { return time.Weekday(d % 7) }

func (d Day) String() string {
	if d == AllDays {
		return "all"
	}
	return d.Weekday().String()
}

const allWord = "All"

// ParseCity matches free text against city names and source keys
func ParseCity(s string) (City, error) {
	in := pstrings.Title(s)
	for _, c := range Cities() {
		if in == cityTable[c].name || pstrings.EqualFold(s, cityTable[c].key) {
			return c, nil
		}
	}
	return CityUnknown, invalid("city", s)
}

// ParseMonth matches free text against January..June or All
func ParseMonth(s string) (Month, error) {
	in := pstrings.Title(s)
	if in == allWord {
		return AllMonths, nil
	}
	for _, m := range Months() {
		if in == m.String() {
			return m, nil
		}
	}
	return AllMonths, invalid("month", s)
}

// ParseDay matches free text against Monday..Sunday or All
func ParseDay(s string) (Day, error) {
	in := pstrings.Title(s)
	if in == allWord {
		return AllDays, nil
	}
	for _, d := range Days() {
		if in == d.String() {
			return d, nil
		}
	}
	return AllDays, invalid("day", s)
}
