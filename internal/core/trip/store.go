package trip

import (
	"iter"
	"slices"
)

// Store is the ordered set of records loaded for one city
// It is read-only once built; every range starts from the first record
type Store struct {
	city string
	recs []Record
}

// NewStore copies recs into a new Store for city
func NewStore(city string, recs []Record) *Store {
	return &Store{city: city, recs: slices.Clone(recs)}
}

// City is the source key the store was loaded for
func (s *Store) City() string {
	if s == nil {
		return ""
	}
	return s.city
}

// Len returns the number of records
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.recs)
}

// At returns the i-th record in load order
func (s *Store) At(i int) Record { return s.recs[i] }

// All yields records in load order
func (s *Store) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if s == nil {
			return
		}
		for _, r := range s.recs {
			if !yield(r) {
				return
			}
		}
	}
}

// Builder accumulates records for a Store without an intermediate copy
type Builder struct {
	city string
	recs []Record
}

// NewBuilder starts a store for city with room for sizeHint records
func NewBuilder(city string, sizeHint int) *Builder {
	return &Builder{city: city, recs: make([]Record, 0, max(sizeHint, 0))}
}

// Add appends a record built from a; its Index becomes its position in load order
func (b *Builder) Add(a Attrs) {
	a.Index = len(b.recs)
	b.recs = append(b.recs, New(a))
}

// Len returns the number of records added so far
func (b *Builder) Len() int { return len(b.recs) }

// Store hands the accumulated records to a new Store; the builder is empty afterwards
func (b *Builder) Store() *Store {
	s := &Store{city: b.city, recs: b.recs}
	b.recs = nil
	return s
}
