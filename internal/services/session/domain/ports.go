package domain

import (
	"context"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/core/trip"
	explore "bikeshare/internal/services/explore/domain"
)

// Prompter obtains the next selection
type Prompter interface {
	Criteria(ctx context.Context) (filter.Criteria, error)
}

// Loader returns the records of one city
type Loader interface {
	Load(ctx context.Context, city filter.City) (*trip.Store, error)
}

// Reporter builds the statistics report for a view
type Reporter = explore.ReportPort

// Guards are the yes/no decisions taken between states
type Guards interface {
	Browse(ctx context.Context) (bool, error)
	NextPage(ctx context.Context) (bool, error)
	Restart(ctx context.Context) (bool, error)
}

// Renderer shows reports, pages and recoverable problems
type Renderer interface {
	Report(ctx context.Context, r explore.Report) error
	Page(ctx context.Context, p paginate.Page[trip.Record]) error
	Problem(ctx context.Context, err error) error
}

// RunnerPort runs a session to completion
type RunnerPort interface {
	Run(ctx context.Context) (Summary, error)
}
