package repokit

import (
	"context"

	perr "bikeshare/internal/platform/errors"
)

type guarder interface {
	Guard(context.Context) error
}

// Guard runs store.Guard and wraps any failure as a Source error
func Guard(ctx context.Context, st guarder) error {
	if err := st.Guard(ctx); err != nil {
		return perr.Wrap(err, perr.ErrorCodeSource, "dependency guard failed")
	}
	return nil
}
