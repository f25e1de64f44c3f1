// Package wait polls a condition with bounded exponential backoff.
//
// It is used to wait for hypervisor-side state to settle after a command
// returns, instead of sleeping for a fixed time.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrTimeout is returned when the condition is not met before the timeout.
var ErrTimeout = errors.New("timed out waiting for condition")

var errNotDone = errors.New("condition not met")

// Default polling parameters.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultInitialInterval = 200 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
)

// Options bounds a wait.
type Options struct {
	// Timeout is the total time allowed. Zero disables waiting.
	Timeout time.Duration

	// InitialInterval is the delay before the second check.
	InitialInterval time.Duration

	// MaxInterval caps the delay between checks.
	MaxInterval time.Duration
}

// ConditionFunc reports whether the awaited state has been reached.
// A non-nil error stops the wait immediately.
type ConditionFunc func(ctx context.Context) (bool, error)

// Until calls cond until it returns true, returns an error, the timeout
// elapses, or ctx is done. The first check happens immediately.
func Until(ctx context.Context, opts Options, cond ConditionFunc) error {
	if opts.Timeout <= 0 {
		return nil
	}

	b := newBackOff(opts)

	op := func() error {
		done, err := cond(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !done {
			return errNotDone
		}
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	if errors.Is(err, errNotDone) {
		return fmt.Errorf("%w after %s", ErrTimeout, opts.Timeout)
	}
	return err
}

func newBackOff(opts Options) backoff.BackOff {
	initial := opts.InitialInterval
	if initial <= 0 {
		initial = DefaultInitialInterval
	}
	maxInterval := opts.MaxInterval
	if maxInterval <= 0 {
		maxInterval = DefaultMaxInterval
	}
	if maxInterval < initial {
		maxInterval = initial
	}

	return &backoff.ExponentialBackOff{
		InitialInterval:     initial,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         maxInterval,
		MaxElapsedTime:      opts.Timeout,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
}
