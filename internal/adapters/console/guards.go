package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/paginate"
	pstrings "bikeshare/internal/platform/strings"
)

const (
	browsePrompt  = "\nWould you like to look at the raw data? Enter yes or no.\n"
	nextPrompt    = "\n\nWould you like to look at the next %d rows of data? Enter yes or no.\n"
	restartPrompt = "\nWould you like to restart? Enter yes or no.\n"
)

// Guards asks the yes/no questions between session states
// Only "yes" is affirmative; exhausted input answers no
type Guards struct {
	t        *Term
	pageSize int
}

// NewGuards returns guards on t; pageSize is quoted in the next page question
func NewGuards(t *Term, pageSize int) *Guards {
	if pageSize <= 0 {
		pageSize = paginate.DefaultSize
	}
	return &Guards{t: t, pageSize: pageSize}
}

// Browse asks whether to page through the raw records
func (g *Guards) Browse(ctx context.Context) (bool, error) { return g.yes(ctx, browsePrompt) }

// NextPage asks whether to show another page
func (g *Guards) NextPage(ctx context.Context) (bool, error) {
	return g.yes(ctx, fmt.Sprintf(nextPrompt, g.pageSize))
}

// Restart asks whether to start over with a new selection
func (g *Guards) Restart(ctx context.Context) (bool, error) { return g.yes(ctx, restartPrompt) }

func (g *Guards) yes(ctx context.Context, prompt string) (bool, error) {
	ans, err := g.t.ask(ctx, prompt)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return pstrings.EqualFold(ans, "yes"), nil
}

// Script answers the session from fixed settings: one selection, a number of raw pages, no restart
type Script struct {
	crit   filter.Criteria
	pages  int
	served int
	asked  bool
}

// NewScript returns a one-shot script for crit showing up to pages raw pages
func NewScript(crit filter.Criteria, pages int) *Script {
	return &Script{crit: crit, pages: max(pages, 0)}
}

// Criteria returns the fixed selection once, then io.EOF
func (s *Script) Criteria(context.Context) (filter.Criteria, error) {
	if s.asked {
		return filter.Criteria{}, io.EOF
	}
	s.asked = true
	return s.crit, nil
}

// Browse is true when any raw page was requested
func (s *Script) Browse(context.Context) (bool, error) { return s.pages > 0, nil }

// NextPage continues until the requested number of pages has been shown
func (s *Script) NextPage(context.Context) (bool, error) {
	s.served++
	return s.served < s.pages, nil
}

// Restart never restarts
func (s *Script) Restart(context.Context) (bool, error) { return false, nil }
