package validation

import (
	"context"

	"golang.org/x/sync/errgroup"
)

/*
Parallel validates items concurrently, at most limit at a time (no limit if limit is
less than 1). It returns the failure of the earliest item in the list, not the
first to finish, so the result is the same as validating them in order.

Validation does not block, so ctx only stops items that have not started yet; it
returns ctx.Err() in that case.
*/
func Parallel(ctx context.Context, limit int, items ...Validatable) error {
	failures := make([]error, len(items))

	group, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for index, item := range items {
		index, item := index, item
		if IsNil(item) {
			continue
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			failures[index] = item.Validate()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, err := range failures {
		if err != nil {
			return err
		}
	}
	return nil
}
