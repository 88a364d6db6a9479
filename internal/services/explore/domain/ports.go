package domain

import (
	"context"

	"bikeshare/internal/core/filter"
)

// ReportPort builds the statistics report for a filtered view
type ReportPort interface {
	Build(ctx context.Context, v filter.View) (Report, error)
}
