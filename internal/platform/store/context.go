package store

import "context"

type queryTagKey struct{}

// WithQueryTag labels queries issued under ctx (e.g. "trips.load") so traces can be told apart
func WithQueryTag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, queryTagKey{}, tag)
}

// QueryTag retrieves the query tag from ctx if present
func QueryTag(ctx context.Context) (string, bool) {
	s, _ := ctx.Value(queryTagKey{}).(string)
	return s, s != ""
}
