// Package console is the terminal face of the explorer: prompts, yes/no guards and renderers
package console

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type line struct {
	text string
	err  error
}

// Term reads answers line by line from in and writes prompts to out
// Reads happen on a background goroutine so a blocked read never outlives a canceled context
type Term struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan line
	err   error
}

// NewTerm returns a terminal over in and out
func NewTerm(in io.Reader, out io.Writer) *Term {
	return &Term{in: in, out: out, lines: make(chan line)}
}

func (t *Term) pump() {
	sc := bufio.NewScanner(t.in)
	for sc.Scan() {
		t.lines <- line{text: sc.Text()}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	t.lines <- line{err: err}
}

// say writes s as is
func (t *Term) say(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}

// ask writes prompt and waits for the next line of input
// Once input is exhausted every call returns io.EOF
func (t *Term) ask(ctx context.Context, prompt string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := t.say(prompt); err != nil {
		return "", err
	}
	t.once.Do(func() { go t.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-t.lines:
		if l.err != nil {
			t.err = l.err
			return "", l.err
		}
		return l.text, nil
	}
}
