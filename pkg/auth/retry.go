package auth

import (
	"context"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/k3s-io/swiftclient/pkg/log"
)

type retryingAuth struct {
	parent   Authenticator
	attempts uint
	step     time.Duration
}

// Retrying retries a failed Authenticate up to attempts times, waiting a
// linearly growing multiple of step between tries. It gives up early once
// ctx is done.
func Retrying(parent Authenticator, attempts uint, step time.Duration) Authenticator {
	if attempts <= 1 {
		return parent
	}
	return &retryingAuth{parent: parent, attempts: attempts, step: step}
}

func (r *retryingAuth) Authenticate(ctx context.Context) (lease Lease, err error) {
	if err = ctx.Err(); err != nil {
		return Lease{}, err
	}

	err = retry.Retry(func(attempt uint) error {
		var aerr error
		lease, aerr = r.parent.Authenticate(ctx)
		if aerr != nil {
			log.Debugf(ctx, "swift-auth: authenticate (try: %d) failed: %v", attempt, aerr)
		}
		return aerr
	},
		strategy.Limit(r.attempts),
		waitBackoff(ctx, backoff.Linear(r.step)),
	)
	if cerr := ctx.Err(); cerr != nil {
		return Lease{}, cerr
	}
	if err != nil {
		return Lease{}, err
	}
	return lease, nil
}

// waitBackoff is strategy.Backoff, except the wait ends as soon as ctx is
// done, which also stops further attempts.
func waitBackoff(ctx context.Context, algorithm backoff.Algorithm) strategy.Strategy {
	return func(attempt uint) bool {
		if attempt == 0 {
			return ctx.Err() == nil
		}

		timer := time.NewTimer(algorithm(attempt))
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		}
	}
}
