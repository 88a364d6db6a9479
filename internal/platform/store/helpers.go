package store

import "context"

// Each streams every row through scan then fn, in result order
// the first error from scan or fn stops iteration and is returned
func Each[T any](ctx context.Context, q Querier, scan func(Row) (T, error), fn func(T) error, sql string, args ...any) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := scan(rows)
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return rows.Err()
}
