package trip

// Field selects one attribute of a Record
type Field uint8

// Known fields; source columns first, derived calendar fields last
const (
	StartTime Field = iota
	EndTime
	TripDuration
	StartStation
	EndStation
	UserType
	Gender
	BirthYear
	Month
	DayOfWeek
	StartHour

	fieldCount
)

var fieldNames = [fieldCount]string{
	StartTime:    "Start Time",
	EndTime:      "End Time",
	TripDuration: "Trip Duration",
	StartStation: "Start Station",
	EndStation:   "End Station",
	UserType:     "User Type",
	Gender:       "Gender",
	BirthYear:    "Birth Year",
	Month:        "Month",
	DayOfWeek:    "Day Of Week",
	StartHour:    "Start Hour",
}

// accessors is indexed by Field; optional fields report absence through the bool
var accessors = [fieldCount]func(Record) (Value, bool){
	StartTime:    func(r Record) (Value, bool) { return Time(r.start), true },
	EndTime:      func(r Record) (Value, bool) { return Time(r.end), true },
	TripDuration: func(r Record) (Value, bool) { return Int(r.duration), true },
	StartStation: func(r Record) (Value, bool) { return String(r.startStation), true },
	EndStation:   func(r Record) (Value, bool) { return String(r.endStation), true },
	UserType: func(r Record) (Value, bool) {
		if r.userType == "" {
			return Value{}, false
		}
		return String(r.userType), true
	},
	Gender: func(r Record) (Value, bool) {
		if !r.hasGender {
			return Value{}, false
		}
		return String(r.gender), true
	},
	BirthYear: func(r Record) (Value, bool) {
		if !r.hasBirthYear {
			return Value{}, false
		}
		return Int(r.birthYear), true
	},
	Month:     func(r Record) (Value, bool) { return MonthOf(r.month), true },
	DayOfWeek: func(r Record) (Value, bool) { return WeekdayOf(r.weekday), true },
	StartHour: func(r Record) (Value, bool) { return Int(int64(r.hour)), true },
}

// Valid reports whether f is one of the known fields
func (f Field) Valid() bool { return f < fieldCount }

// String returns the column header the field is read from or displayed as
func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// Optional reports whether records may lack a value for f
// Some data files leave User Type blank; such records have no user type
func (f Field) Optional() bool { return f == Gender || f == BirthYear || f == UserType }

// Numeric reports whether f holds integers that can be summed
func (f Field) Numeric() bool {
	switch f {
	case TripDuration, BirthYear, StartHour:
		return true
	default:
		return false
	}
}

// Columns are the source fields in display order
func Columns() []Field {
	return []Field{StartTime, EndTime, TripDuration, StartStation, EndStation, UserType, Gender, BirthYear}
}
