// Package paginate turns a record sequence into fixed-size pages
package paginate

import "iter"

// DefaultSize is the page size used when none is given
const DefaultSize = 5

// Page is one chunk of a sequence
type Page[T any] struct {
	// Number is 1-based
	Number int
	// Offset is the position of Items[0] in the sequence
	Offset int
	Items  []T
}

func normSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	return size
}

// Pages yields seq in pages of up to size items; a consumer that breaks stops production
// Each range over the result starts again from the first item of seq
func Pages[T any](seq iter.Seq[T], size int) iter.Seq[Page[T]] {
	size = normSize(size)
	return func(yield func(Page[T]) bool) {
		p := Page[T]{Number: 1, Items: make([]T, 0, size)}
		for item := range seq {
			p.Items = append(p.Items, item)
			if len(p.Items) < size {
				continue
			}
			if !yield(p) {
				return
			}
			p = Page[T]{Number: p.Number + 1, Offset: p.Offset + size, Items: make([]T, 0, size)}
		}
		if len(p.Items) > 0 {
			yield(p)
		}
	}
}

// Pager pulls pages one at a time and remembers where it stopped
// Stop must be called when the caller is done, even after exhaustion
type Pager[T any] struct {
	next   func() (T, bool)
	stop   func()
	size   int
	cursor int
	number int
	done   bool
}

// NewPager starts a pager at the beginning of seq
func NewPager[T any](seq iter.Seq[T], size int) *Pager[T] {
	return Resume(seq, size, 0)
}

// Resume starts a pager whose first page begins at cursor
func Resume[T any](seq iter.Seq[T], size, cursor int) *Pager[T] {
	next, stop := iter.Pull(seq)
	p := &Pager[T]{next: next, stop: stop, size: normSize(size)}
	for p.cursor < cursor {
		if _, ok := next(); !ok {
			p.done = true
			break
		}
		p.cursor++
	}
	p.number = p.cursor / p.size
	return p
}

// Next returns the following page, false once the sequence is exhausted
func (p *Pager[T]) Next() (Page[T], bool) {
	if p.done {
		return Page[T]{}, false
	}
	pg := Page[T]{Number: p.number + 1, Offset: p.cursor, Items: make([]T, 0, p.size)}
	for len(pg.Items) < p.size {
		item, ok := p.next()
		if !ok {
			p.done = true
			break
		}
		pg.Items = append(pg.Items, item)
	}
	if len(pg.Items) == 0 {
		return Page[T]{}, false
	}
	p.cursor += len(pg.Items)
	p.number++
	return pg, true
}

// Cursor is the offset of the next unread item
func (p *Pager[T]) Cursor() int { return p.cursor }

// Done reports whether the end of the sequence has been reached or the pager stopped
func (p *Pager[T]) Done() bool { return p.done }

// Stop releases the underlying pull iterator
func (p *Pager[T]) Stop() {
	p.done = true
	p.stop()
}
