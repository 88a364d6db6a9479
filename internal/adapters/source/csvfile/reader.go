// Package csvfile reads city trip data files
package csvfile

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	pstrings "bikeshare/internal/platform/strings"
	ptime "bikeshare/internal/platform/time"
)

// required are the columns every data file must carry
var required = []trip.Field{
	trip.StartTime, trip.EndTime, trip.TripDuration,
	trip.StartStation, trip.EndStation, trip.UserType,
}

// Reader streams trip attributes from a CSV data file with a header row
// Columns are addressed by header name; unknown columns are ignored
type Reader struct {
	cr   *csv.Reader
	cols map[trip.Field]int
	err  error
	rows int
}

// NewReader reads the header from r and maps it to trip fields
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.InvalidArgf("data file is empty")
		}
		return nil, parseErr(err)
	}

	cols := make(map[trip.Field]int, len(header))
	for i, h := range header {
		name := pstrings.Canon(h)
		for _, f := range trip.Columns() {
			if name == f.String() {
				cols[f] = i
			}
		}
	}
	for _, f := range required {
		if _, ok := cols[f]; !ok {
			return nil, perr.WithField(perr.InvalidArgf("data file has no %q column", f), f.String())
		}
	}
	return &Reader{cr: cr, cols: cols}, nil
}

// Next reads the next row; returns io.EOF when done
func (rd *Reader) Next() (trip.Attrs, error) {
	if rd.err != nil {
		return trip.Attrs{}, rd.err
	}
	rec, err := rd.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			rd.err = io.EOF
			return trip.Attrs{}, io.EOF
		}
		rd.err = parseErr(err)
		return trip.Attrs{}, rd.err
	}
	a, err := rd.row(rec)
	if err != nil {
		rd.err = err
		return trip.Attrs{}, err
	}
	rd.rows++
	return a, nil
}

// Rows returns the number of rows read so far
func (rd *Reader) Rows() int { return rd.rows }

// HasColumn reports whether the file carries f
func (rd *Reader) HasColumn(f trip.Field) bool {
	_, ok := rd.cols[f]
	return ok
}

func (rd *Reader) row(rec []string) (trip.Attrs, error) {
	line, _ := rd.cr.FieldPos(0)
	c := cells{rec: rec, cols: rd.cols, line: line}

	a := trip.Attrs{
		Start:        c.timestamp(trip.StartTime),
		End:          c.timestamp(trip.EndTime),
		Duration:     c.integer(trip.TripDuration),
		StartStation: c.raw(trip.StartStation),
		EndStation:   c.raw(trip.EndStation),
		UserType:     c.raw(trip.UserType),
		Gender:       pstrings.Ptr(c.raw(trip.Gender)),
		BirthYear:    c.optInteger(trip.BirthYear),
	}
	if c.err != nil {
		return trip.Attrs{}, c.err
	}
	return a, nil
}

// cells decodes one row, keeping the first error
type cells struct {
	rec  []string
	cols map[trip.Field]int
	line int
	err  error
}

func (c *cells) raw(f trip.Field) string {
	i, ok := c.cols[f]
	if !ok || i >= len(c.rec) {
		return ""
	}
	return strings.TrimSpace(c.rec[i])
}

func (c *cells) fail(f trip.Field, format string, a ...any) {
	if c.err != nil {
		return
	}
	args := append([]any{c.line, f.String()}, a...)
	c.err = perr.WithField(perr.InvalidArgf("line %d column %q: "+format, args...), f.String())
}

func (c *cells) timestamp(f trip.Field) time.Time {
	s := c.raw(f)
	t, err := ptime.Parse(s)
	if err != nil {
		c.fail(f, "bad timestamp %q", s)
	}
	return t
}

func (c *cells) integer(f trip.Field) int64 {
	s := c.raw(f)
	n, err := number(s)
	if err != nil {
		c.fail(f, "bad number %q", s)
	}
	return n
}

func (c *cells) optInteger(f trip.Field) *int64 {
	s := c.raw(f)
	if s == "" {
		return nil
	}
	n, err := number(s)
	if err != nil {
		c.fail(f, "bad number %q", s)
		return nil
	}
	return &n
}

// number accepts integer text or float text such as "1039.0", rounding the latter
func number(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return int64(math.Round(f)), nil
}

func parseErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrapf(pe.Err, perr.ErrorCodeInvalidArgument, "line %d column %d", pe.Line, pe.Column)
	}
	return perr.Wrap(err, perr.ErrorCodeSource, "read data file")
}
