// Package trip holds the immutable trip record and the ordered store records are loaded into
package trip

import "time"

// Attrs are the source attributes of one trip, as read by a record source
// Gender and BirthYear are optional; nil means the cell was empty or the column absent
type Attrs struct {
	Index        int
	Start        time.Time
	End          time.Time
	Duration     int64
	StartStation string
	EndStation   string
	UserType     string
	Gender       *string
	BirthYear    *int64
}

// Record is one trip plus the calendar fields derived from its start time
// The zero Record is not meaningful; build records with New
type Record struct {
	index        int
	start        time.Time
	end          time.Time
	duration     int64
	startStation string
	endStation   string
	userType     string
	gender       string
	hasGender    bool
	birthYear    int64
	hasBirthYear bool

	month   time.Month
	weekday time.Weekday
	hour    int
}

// New builds a Record and derives month, weekday and start hour from the start time
// The start time is used as parsed, without zone conversion
func New(a Attrs) Record {
	r := Record{
		index:        a.Index,
		start:        a.Start,
		end:          a.End,
		duration:     a.Duration,
		startStation: a.StartStation,
		endStation:   a.EndStation,
		userType:     a.UserType,
		month:        a.Start.Month(),
		weekday:      a.Start.Weekday(),
		hour:         a.Start.Hour(),
	}
	if a.Gender != nil {
		r.gender, r.hasGender = *a.Gender, true
	}
	if a.BirthYear != nil {
		r.birthYear, r.hasBirthYear = *a.BirthYear, true
	}
	return r
}

// Index is the 0-based position of the record in its source
func (r Record) Index() int { return r.index }

func (r Record) Start() time.Time     { return r.start }
func (r Record) End() time.Time       { return r.end }
func (r Record) Duration() int64      { return r.duration }
func (r Record) StartStation() string { return r.startStation }
func (r Record) EndStation() string   { return r.endStation }
func (r Record) UserType() string     { return r.userType }

// Gender reports the rider gender, false when the source had none
func (r Record) Gender() (string, bool) { return r.gender, r.hasGender }

// BirthYear reports the rider birth year, false when the source had none
func (r Record) BirthYear() (int64, bool) { return r.birthYear, r.hasBirthYear }

func (r Record) Month() time.Month     { return r.month }
func (r Record) Weekday() time.Weekday { return r.weekday }
func (r Record) StartHour() int        { return r.hour }

// Get reads a field through the accessor table, false for an absent optional value
func (r Record) Get(f Field) (Value, bool) {
	if !f.Valid() {
		return Value{}, false
	}
	return accessors[f](r)
}
