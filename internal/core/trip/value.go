package trip

import (
	"strconv"
	"time"

	ptime "bikeshare/internal/platform/time"
)

// Kind tags the type held by a Value
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindMonth
	KindWeekday
	KindTime
)

// Value is a comparable field value, usable as a map key when counting
// Timestamps are held as UTC unix nanoseconds so equal instants compare equal
type Value struct {
	kind Kind
	s    string
	n    int64
}

// String builds a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int builds an integer value
func Int(n int64) Value { return Value{kind: KindInt, n: n} }

// MonthOf builds a calendar month value
func MonthOf(m time.Month) Value { return Value{kind: KindMonth, n: int64(m)} }

// WeekdayOf builds a weekday value
func WeekdayOf(d time.Weekday) Value { return Value{kind: KindWeekday, n: int64(d)} }

// Time builds a timestamp value
func Time(t time.Time) Value { return Value{kind: KindTime, n: t.UTC().UnixNano()} }

// Kind returns the value's tag
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v was never set
func (v Value) IsZero() bool { return v.kind == KindNone }

// Int64 returns the integer payload for integer, month and weekday values
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt, KindMonth, KindWeekday:
		return v.n, true
	default:
		return 0, false
	}
}

// Time returns the timestamp payload
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return time.Unix(0, v.n).UTC(), true
}

// String renders the value for display
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindMonth:
		return time.Month(v.n).String()
	case KindWeekday:
		return time.Weekday(v.n).String()
	case KindTime:
		return time.Unix(0, v.n).UTC().Format(ptime.Layout)
	default:
		return ""
	}
}
