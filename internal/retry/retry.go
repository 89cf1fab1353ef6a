// Package retry implements the bounded immediate-retry discipline used around
// brokerage calls: re-invoke on failure with no backoff, short-circuit on the
// first success.
package retry

import "context"

// DefaultAttempts matches the brokerage retry budget.
const DefaultAttempts = 5

// Do invokes op up to maxAttempts times, returning the first successful
// result. When every attempt fails it returns the last error. The context is
// only consulted between attempts; an in-flight call is never interrupted.
func Do[T any](ctx context.Context, maxAttempts int, op func(context.Context) (T, error)) (T, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var (
		result  T
		lastErr error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return result, lastErr
			}
			return result, err
		}
		result, lastErr = op(ctx)
		if lastErr == nil {
			return result, nil
		}
	}
	var zero T
	return zero, lastErr
}
