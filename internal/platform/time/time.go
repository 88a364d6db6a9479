// Package time contains timestamp helpers shared by record sources
package time

import (
	"strings"
	"time"
)

// Layout is the timestamp layout of the city data files
const Layout = "2006-01-02 15:04:05"

// layouts are tried in order by Parse
var layouts = []string{
	Layout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Parse reads a wall-clock timestamp in any accepted layout
// Values without a zone are interpreted as UTC and keep their wall clock
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var first error
	for _, l := range layouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, first
}

// Seconds renders a duration as fractional seconds the way the timing lines print it
func Seconds(d time.Duration) float64 {
	return float64(d.Round(time.Microsecond)) / float64(time.Second)
}
