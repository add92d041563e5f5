package museum

import (
	"context"
	"errors"
	"net"
)

// lookupRecord fetches a single record with a bounded retry budget.
//
//   - success, or fn returning (nil, nil) for "no such record": returned as is
//   - 404/403/410: (nil, nil) immediately, no retry
//   - 429, 5xx, timeouts: retried up to retries more times, then (nil, lastErr)
//   - anything else: (nil, err) without retry
func lookupRecord[T any](ctx context.Context, retries int, fn func(context.Context) (*T, error)) (*T, error) {
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		rec, err := fn(ctx)
		if err == nil {
			return rec, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && se.Definitive() {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !transient(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func transient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
