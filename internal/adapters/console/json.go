package console

import (
	"context"
	"encoding/json"
	"io"

	"bikeshare/internal/core/aggregate"
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	ptime "bikeshare/internal/platform/time"
	explore "bikeshare/internal/services/explore/domain"
)

// JSON writes one JSON document per line for every report, page and problem
type JSON struct {
	enc *json.Encoder
}

// NewJSON returns a JSON lines renderer on w
func NewJSON(w io.Writer) *JSON { return &JSON{enc: json.NewEncoder(w)} }

type statDoc[T any] struct {
	Value *T     `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func docOf[S, T any](s explore.Stat[S], conv func(S) T) statDoc[T] {
	if !s.OK() {
		return statDoc[T]{Error: describe(s.Err)}
	}
	v := conv(s.Value)
	return statDoc[T]{Value: &v}
}

type countDoc struct {
	Value any `json:"value"`
	Count int `json:"count"`
}

type pairDoc struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Count int    `json:"count"`
}

type yearsDoc struct {
	Earliest   int64 `json:"earliest"`
	MostRecent int64 `json:"most_recent"`
	MostCommon int64 `json:"most_common"`
}

type groupDoc[T any] struct {
	Title          string   `json:"title"`
	ElapsedSeconds *float64 `json:"elapsed_seconds,omitempty"`
	Stats          T        `json:"stats"`
}

type criteriaDoc struct {
	City  string `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

type reportDoc struct {
	Type     string      `json:"type"`
	Criteria criteriaDoc `json:"criteria"`
	Records  int         `json:"records"`
	Time     groupDoc[struct {
		Month statDoc[countDoc] `json:"month"`
		Day   statDoc[countDoc] `json:"day"`
		Hour  statDoc[countDoc] `json:"hour"`
	}] `json:"time"`
	Station groupDoc[struct {
		Start statDoc[countDoc] `json:"start"`
		End   statDoc[countDoc] `json:"end"`
		Trip  statDoc[pairDoc]  `json:"trip"`
	}] `json:"station"`
	Duration groupDoc[struct {
		Total statDoc[int64]   `json:"total"`
		Mean  statDoc[float64] `json:"mean"`
	}] `json:"duration"`
	User groupDoc[struct {
		Types      statDoc[[]countDoc] `json:"types"`
		Genders    statDoc[[]countDoc] `json:"genders"`
		BirthYears statDoc[yearsDoc]   `json:"birth_years"`
	}] `json:"user"`
}

type rowDoc struct {
	Row          int     `json:"row"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TripDuration int64   `json:"trip_duration"`
	StartStation string  `json:"start_station"`
	EndStation   string  `json:"end_station"`
	UserType     *string `json:"user_type,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	BirthYear    *int64  `json:"birth_year,omitempty"`
}

type pageDoc struct {
	Type   string   `json:"type"`
	Number int      `json:"number"`
	Offset int      `json:"offset"`
	Rows   []rowDoc `json:"rows"`
}

type problemDoc struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report implements the session Renderer port
func (j *JSON) Report(_ context.Context, rep explore.Report) error {
	d := reportDoc{
		Type: "report",
		Criteria: criteriaDoc{
			City:  rep.Criteria.City.String(),
			Month: rep.Criteria.Month.String(),
			Day:   rep.Criteria.Day.String(),
		},
		Records: rep.Records,
	}
	d.Time.Title, d.Time.ElapsedSeconds = rep.Time.Title, elapsed(rep, rep.Time.Elapsed.Seconds())
	d.Time.Stats.Month = docOf(rep.Time.Stats.Month, modeDoc)
	d.Time.Stats.Day = docOf(rep.Time.Stats.Day, modeDoc)
	d.Time.Stats.Hour = docOf(rep.Time.Stats.Hour, modeDoc)

	d.Station.Title, d.Station.ElapsedSeconds = rep.Station.Title, elapsed(rep, rep.Station.Elapsed.Seconds())
	d.Station.Stats.Start = docOf(rep.Station.Stats.Start, modeDoc)
	d.Station.Stats.End = docOf(rep.Station.Stats.End, modeDoc)
	d.Station.Stats.Trip = docOf(rep.Station.Stats.Trip, func(p aggregate.Pair) pairDoc {
		return pairDoc{Start: p.First, End: p.Second, Count: p.Count}
	})

	d.Duration.Title, d.Duration.ElapsedSeconds = rep.Duration.Title, elapsed(rep, rep.Duration.Elapsed.Seconds())
	d.Duration.Stats.Total = docOf(rep.Duration.Stats.Total, same[int64])
	d.Duration.Stats.Mean = docOf(rep.Duration.Stats.Mean, same[float64])

	d.User.Title, d.User.ElapsedSeconds = rep.User.Title, elapsed(rep, rep.User.Elapsed.Seconds())
	d.User.Stats.Types = docOf(rep.User.Stats.Types, countDocs)
	d.User.Stats.Genders = docOf(rep.User.Stats.Genders, countDocs)
	d.User.Stats.BirthYears = docOf(rep.User.Stats.BirthYears, func(e aggregate.Extremes) yearsDoc {
		return yearsDoc{Earliest: e.Min, MostRecent: e.Max, MostCommon: e.Mode}
	})
	return j.enc.Encode(d)
}

// Page implements the session Renderer port
func (j *JSON) Page(_ context.Context, p paginate.Page[trip.Record]) error {
	d := pageDoc{Type: "page", Number: p.Number, Offset: p.Offset, Rows: make([]rowDoc, 0, len(p.Items))}
	for _, r := range p.Items {
		row := rowDoc{
			Row:          r.Index(),
			StartTime:    r.Start().Format(ptime.Layout),
			EndTime:      r.End().Format(ptime.Layout),
			TripDuration: r.Duration(),
			StartStation: r.StartStation(),
			EndStation:   r.EndStation(),
		}
		if v, ok := r.Get(trip.UserType); ok {
			s := v.String()
			row.UserType = &s
		}
		if g, ok := r.Gender(); ok {
			row.Gender = &g
		}
		if y, ok := r.BirthYear(); ok {
			row.BirthYear = &y
		}
		d.Rows = append(d.Rows, row)
	}
	return j.enc.Encode(d)
}

// Problem implements the session Renderer port
func (j *JSON) Problem(_ context.Context, err error) error {
	return j.enc.Encode(problemDoc{Type: "problem", Code: perr.CodeOf(err).String(), Message: describe(err)})
}

func elapsed(rep explore.Report, secs float64) *float64 {
	if !rep.Timings {
		return nil
	}
	return &secs
}

func same[T any](v T) T { return v }

func modeDoc(m aggregate.Mode) countDoc { return countDoc{Value: scalar(m.Value), Count: m.Count} }

func countDocs(cs []aggregate.Count) []countDoc {
	out := make([]countDoc, 0, len(cs))
	for _, c := range cs {
		out = append(out, countDoc{Value: scalar(c.Value), Count: c.Count})
	}
	return out
}

// scalar keeps integers numeric in the document and names everything else
func scalar(v trip.Value) any {
	if v.Kind() == trip.KindInt {
		n, _ := v.Int64()
		return n
	}
	return v.String()
}
