// Package aggregate computes descriptive statistics over a sequence of trip records
//
// Every function takes an iter.Seq so it works on a whole store or a filtered view alike.
// Functions that need two passes (MostFrequentPair) require a restartable sequence.
package aggregate

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
)

// PairSeparator joins the two values of a pair before counting
const PairSeparator = " - "

// Mode is the most frequent value of a field and how often it occurs
type Mode struct {
	Value trip.Value
	Count int
}

// Count is one entry of a value distribution
type Count struct {
	Value trip.Value
	Count int
}

// Pair is the most frequent combination of two fields
type Pair struct {
	First  string
	Second string
	Count  int
}

// Extremes summarizes a numeric field ignoring absent values
type Extremes struct {
	Min  int64
	Max  int64
	Mode int64
}

// tally counts values in first-seen order
type tally struct {
	records int
	counts  map[trip.Value]int
	order   []trip.Value
}

func newTally() *tally { return &tally{counts: map[trip.Value]int{}} }

func (t *tally) add(v trip.Value) {
	if _, seen := t.counts[v]; !seen {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

// top returns the highest count, ties resolved by first appearance
func (t *tally) top() (trip.Value, int) {
	var best trip.Value
	n := 0
	for _, v := range t.order {
		if c := t.counts[v]; c > n {
			best, n = v, c
		}
	}
	return best, n
}

func (t *tally) check(f trip.Field) error {
	if t.records == 0 {
		return perr.WithField(perr.EmptyDatasetf("no records to aggregate"), f.String())
	}
	if len(t.order) == 0 {
		return perr.WithField(perr.MissingFieldf("no values for %s", f), f.String())
	}
	return nil
}

func count(seq iter.Seq[trip.Record], f trip.Field) *tally {
	t := newTally()
	for r := range seq {
		t.records++
		if v, ok := r.Get(f); ok {
			t.add(v)
		}
	}
	return t
}

// MostFrequent returns the mode of f; ties go to the value seen first
func MostFrequent(seq iter.Seq[trip.Record], f trip.Field) (Mode, error) {
	t := count(seq, f)
	if err := t.check(f); err != nil {
		return Mode{}, err
	}
	v, n := t.top()
	return Mode{Value: v, Count: n}, nil
}

// CountWhere counts records whose f equals v
func CountWhere(seq iter.Seq[trip.Record], f trip.Field, v trip.Value) int {
	n := 0
	for r := range seq {
		if got, ok := r.Get(f); ok && got == v {
			n++
		}
	}
	return n
}

// ValueCounts returns the distribution of f by descending count, ties in first-seen order
func ValueCounts(seq iter.Seq[trip.Record], f trip.Field) ([]Count, error) {
	t := count(seq, f)
	if err := t.check(f); err != nil {
		return nil, err
	}
	out := make([]Count, 0, len(t.order))
	for _, v := range t.order {
		out = append(out, Count{Value: v, Count: t.counts[v]})
	}
	slices.SortStableFunc(out, func(a, b Count) int { return cmp.Compare(b.Count, a.Count) })
	return out, nil
}

// numbers collects the integer values of a numeric field
func numbers(seq iter.Seq[trip.Record], f trip.Field) ([]int64, error) {
	if !f.Numeric() {
		return nil, perr.WithField(perr.InvalidArgf("%s is not numeric", f), f.String())
	}
	records := 0
	var xs []int64
	for r := range seq {
		records++
		v, ok := r.Get(f)
		if !ok {
			continue
		}
		if n, ok := v.Int64(); ok {
			xs = append(xs, n)
		}
	}
	switch {
	case records == 0:
		return nil, perr.WithField(perr.EmptyDatasetf("no records to aggregate"), f.String())
	case len(xs) == 0:
		return nil, perr.WithField(perr.MissingFieldf("no values for %s", f), f.String())
	}
	return xs, nil
}

// Sum adds up a numeric field
func Sum(seq iter.Seq[trip.Record], f trip.Field) (int64, error) {
	xs, err := numbers(seq, f)
	if err != nil {
		return 0, err
	}
	var s int64
	for _, x := range xs {
		s += x
	}
	return s, nil
}

// Mean is Sum divided by the number of present values
func Mean(seq iter.Seq[trip.Record], f trip.Field) (float64, error) {
	xs, err := numbers(seq, f)
	if err != nil {
		return 0, err
	}
	var s int64
	for _, x := range xs {
		s += x
	}
	return float64(s) / float64(len(xs)), nil
}

// MinMaxMode returns the smallest, largest and most frequent value of a numeric field
// Absent values are left out of all three; ties for the mode go to the value seen first
func MinMaxMode(seq iter.Seq[trip.Record], f trip.Field) (Extremes, error) {
	xs, err := numbers(seq, f)
	if err != nil {
		return Extremes{}, err
	}
	t := newTally()
	for _, x := range xs {
		t.add(trip.Int(x))
	}
	mode, _ := t.top()
	m, _ := mode.Int64()
	return Extremes{Min: slices.Min(xs), Max: slices.Max(xs), Mode: m}, nil
}

// MostFrequentPair returns the most common combination of a and b
//
// Pairs are counted as "a - b" strings and split back on the first separators, so a value that
// itself contains the separator comes back split in the wrong place. The count is recomputed
// from the recovered halves, which needs a second pass over seq.
func MostFrequentPair(seq iter.Seq[trip.Record], a, b trip.Field) (Pair, error) {
	t := newTally()
	for r := range seq {
		t.records++
		va, okA := r.Get(a)
		vb, okB := r.Get(b)
		if okA && okB {
			t.add(trip.String(va.String() + PairSeparator + vb.String()))
		}
	}
	if t.records == 0 {
		return Pair{}, perr.WithField(perr.EmptyDatasetf("no records to aggregate"), a.String())
	}
	if len(t.order) == 0 {
		return Pair{}, perr.WithField(perr.MissingFieldf("no values for %s and %s", a, b), a.String())
	}

	top, _ := t.top()
	parts := strings.Split(top.String(), PairSeparator)
	p := Pair{First: parts[0], Second: parts[1]}
	for r := range seq {
		va, okA := r.Get(a)
		vb, okB := r.Get(b)
		if okA && okB && va.String() == p.First && vb.String() == p.Second {
			p.Count++
		}
	}
	return p, nil
}
