package console

import (
	"context"
	"strings"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/platform/logger"
)

const (
	greeting = "Hello! Let's explore some US bikeshare data!\n"

	cityPrompt = "Which city, Chicago, New York City, or Washington, would you like to look at?\n"
	cityRetry  = "Error: You did not enter a valid city. Please select one of the following: Chicago, New York City, Washington.\n"

	monthPrompt = "What month would you like to filter by? January, February, March, April, May, June or if you do not want to filter by the month type all.\n"
	monthRetry  = "Error: You did not enter a valid month. Please correctly type in the name of the month or all for no filter.\n"

	dayPrompt = "What day of the week would you like to filter by? If you do not want to filter by the day type all.\n"
	dayRetry  = "Error: You did not enter a valid day. Please correctly type in the day of the week or all for no filter.\n"
)

// separator closes every block of output
var separator = strings.Repeat("-", 40) + "\n"

// Prompter asks for city, month and day until each answer is valid
type Prompter struct {
	t *Term
}

// NewPrompter returns a prompter on t
func NewPrompter(t *Term) *Prompter { return &Prompter{t: t} }

// Criteria implements the session Prompter port
func (p *Prompter) Criteria(ctx context.Context) (filter.Criteria, error) {
	var c filter.Criteria
	if err := p.t.say(greeting); err != nil {
		return c, err
	}
	city, err := choose(ctx, p.t, cityPrompt, cityRetry, filter.ParseCity)
	if err != nil {
		return c, err
	}
	month, err := choose(ctx, p.t, monthPrompt, monthRetry, filter.ParseMonth)
	if err != nil {
		return c, err
	}
	day, err := choose(ctx, p.t, dayPrompt, dayRetry, filter.ParseDay)
	if err != nil {
		return c, err
	}
	if err := p.t.say(separator); err != nil {
		return c, err
	}
	return filter.Criteria{City: city, Month: month, Day: day}, nil
}

// choose re-asks with retry until parse accepts the answer
func choose[T any](ctx context.Context, t *Term, prompt, retry string, parse func(string) (T, error)) (T, error) {
	q := prompt
	for {
		ans, err := t.ask(ctx, q)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(ans)
		if err == nil {
			return v, nil
		}
		logger.C(ctx).Debug().Err(err).Str("answer", ans).Msg("console: re-prompt")
		q = retry
	}
}
