// Package service runs the prompt, load, report and browse cycle as an explicit state machine
package service

import (
	"context"
	"errors"
	"io"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"
	dom "bikeshare/internal/services/session/domain"

	"github.com/google/uuid"
)

// Options wires the controller ports
type Options struct {
	Prompter dom.Prompter
	Loader   dom.Loader
	Reporter dom.Reporter
	Guards   dom.Guards
	Renderer dom.Renderer

	// PageSize is the number of records per raw data page
	PageSize int
}

// Controller implements domain.RunnerPort
type Controller struct {
	opts  Options
	newID func() string
}

// iteration is the state carried across one prompt-to-decision cycle
type iteration struct {
	root  context.Context
	ctx   context.Context
	crit  filter.Criteria
	store *trip.Store
	view  filter.View
}

// New constructs a controller; every port is required
func New(o Options) *Controller {
	switch {
	case o.Prompter == nil:
		panic("session: Prompter port is required")
	case o.Loader == nil:
		panic("session: Loader port is required")
	case o.Reporter == nil:
		panic("session: Reporter port is required")
	case o.Guards == nil:
		panic("session: Guards port is required")
	case o.Renderer == nil:
		panic("session: Renderer port is required")
	}
	if o.PageSize <= 0 {
		o.PageSize = paginate.DefaultSize
	}
	return &Controller{opts: o, newID: uuid.NewString}
}

var _ dom.RunnerPort = (*Controller)(nil)

// Run drives the state machine until the user declines to restart
// Recoverable errors are rendered and lead to the restart decision; any other error ends the session
func (c *Controller) Run(ctx context.Context) (dom.Summary, error) {
	var sum dom.Summary
	it := &iteration{root: ctx, ctx: ctx}
	st := dom.StatePrompting

	for st != dom.StateDone {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		next, err := c.step(st, it, &sum)
		if err != nil {
			// canceled or out of input; the caller decides how to exit
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return sum, err
			}
			// a failed restart decision cannot fall back to itself
			if !perr.Recoverable(err) || st == dom.StateDeciding {
				logger.C(it.ctx).Error().Err(err).Str("state", st.String()).Msg("session: step failed")
				return sum, perr.WithOp(err, "session."+st.String())
			}
			logger.C(it.ctx).Info().Err(err).Str("state", st.String()).Msg("session: recovered")
			sum.Recovered++
			if rerr := c.opts.Renderer.Problem(it.ctx, err); rerr != nil {
				return sum, rerr
			}
			next = dom.StateDeciding
		}
		logger.C(it.ctx).Debug().Str("from", st.String()).Str("to", next.String()).Msg("session: transition")
		st = next
	}
	return sum, nil
}

func (c *Controller) step(st dom.State, it *iteration, sum *dom.Summary) (dom.State, error) {
	switch st {
	case dom.StatePrompting:
		return c.prompt(it)
	case dom.StateLoading:
		return c.load(it)
	case dom.StateAggregating:
		return c.aggregate(it)
	case dom.StateBrowsing:
		return c.browse(it, sum)
	case dom.StateDeciding:
		sum.Iterations++
		return c.decide(it)
	default:
		return dom.StateDone, perr.Internalf("session: unknown state %d", st)
	}
}

func (c *Controller) prompt(it *iteration) (dom.State, error) {
	crit, err := c.opts.Prompter.Criteria(it.ctx)
	if err != nil {
		return dom.StatePrompting, err
	}
	// a fresh iteration drops the previous store and view
	*it = iteration{root: it.root, crit: crit}
	it.ctx = logger.WithSession(it.root, c.newID(), crit.City.Key())
	logger.C(it.ctx).Info().Str("criteria", crit.String()).Msg("session: selection")
	return dom.StateLoading, nil
}

func (c *Controller) load(it *iteration) (dom.State, error) {
	st, err := c.opts.Loader.Load(it.ctx, it.crit.City)
	if err != nil {
		return dom.StateLoading, err
	}
	it.store = st
	return dom.StateAggregating, nil
}

func (c *Controller) aggregate(it *iteration) (dom.State, error) {
	v, err := filter.Apply(it.store, it.crit)
	if err != nil {
		return dom.StateAggregating, err
	}
	it.view = v
	rep, err := c.opts.Reporter.Build(it.ctx, v)
	if err != nil {
		return dom.StateAggregating, err
	}
	if err := c.opts.Renderer.Report(it.ctx, rep); err != nil {
		return dom.StateAggregating, err
	}
	return dom.StateBrowsing, nil
}

func (c *Controller) browse(it *iteration, sum *dom.Summary) (dom.State, error) {
	ok, err := c.opts.Guards.Browse(it.ctx)
	if err != nil || !ok {
		return dom.StateDeciding, err
	}

	pager := paginate.NewPager(it.view.All(), c.opts.PageSize)
	defer pager.Stop()
	for {
		pg, ok := pager.Next()
		if !ok {
			break
		}
		if err := c.opts.Renderer.Page(it.ctx, pg); err != nil {
			return dom.StateBrowsing, err
		}
		sum.Pages++
		// a short page is the last one
		if len(pg.Items) < c.opts.PageSize {
			break
		}
		more, err := c.opts.Guards.NextPage(it.ctx)
		if err != nil {
			return dom.StateBrowsing, err
		}
		if !more {
			break
		}
	}
	logger.C(it.ctx).Debug().Int("cursor", pager.Cursor()).Msg("session: browse ended")
	return dom.StateDeciding, nil
}

func (c *Controller) decide(it *iteration) (dom.State, error) {
	again, err := c.opts.Guards.Restart(it.ctx)
	if err != nil {
		return dom.StateDone, err
	}
	if again {
		return dom.StatePrompting, nil
	}
	return dom.StateDone, nil
}
