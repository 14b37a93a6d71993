package httpclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Schedule is the pure {base, factor, jitter, cap, max_attempts} retry
// description spec §9 asks for, generalized from the donor's
// fixed-parameter Retrier into configurable fields.
type Schedule struct {
	Base        time.Duration
	Factor      float64
	Jitter      float64
	Cap         time.Duration
	MaxAttempts int
}

// DefaultSchedule adapts the donor's newBackoff defaults (base, factor)
// to spec §4.5: 500ms base, factor 2, jitter ±20%, a 30s cap on
// Retry-After waits.
func DefaultSchedule(maxAttempts int) Schedule {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return Schedule{
		Base:        500 * time.Millisecond,
		Factor:      2,
		Jitter:      0.2,
		Cap:         30 * time.Second,
		MaxAttempts: maxAttempts,
	}
}

// Retrier drives a single check attempt through Schedule, retrying every
// error the operation returns unless it is wrapped with
// backoff.Permanent (Execute wraps the errors domain.IsRetryable
// rejects), and honoring a server-supplied Retry-After hint over the
// exponential curve when present.
type Retrier struct {
	schedule Schedule
}

// NewRetrier builds a Retrier from schedule.
func NewRetrier(schedule Schedule) *Retrier {
	return &Retrier{schedule: schedule}
}

// retryAfterBackOff wraps an exponential backoff.BackOff, substituting
// a server Retry-After hint (seconds, capped) for the computed interval
// whenever the operation reports one.
type retryAfterBackOff struct {
	inner    backoff.BackOff
	cap      time.Duration
	override int // seconds; reset to 0 after each use
}

func (w *retryAfterBackOff) NextBackOff() time.Duration {
	if w.override > 0 {
		d := time.Duration(w.override) * time.Second
		if d > w.cap {
			d = w.cap
		}
		w.override = 0
		return d
	}
	return w.inner.NextBackOff()
}

func (w *retryAfterBackOff) Reset() { w.inner.Reset() }

// Retry runs operation up to schedule.MaxAttempts times. operation
// returns the Retry-After hint in seconds (0 if absent) alongside its
// error; a nil error stops the retry loop immediately.
func (r *Retrier) Retry(ctx context.Context, operation func() (retryAfterSeconds int, err error)) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.schedule.Base
	eb.Multiplier = r.schedule.Factor
	eb.RandomizationFactor = r.schedule.Jitter
	eb.MaxInterval = r.schedule.Cap

	wrapped := &retryAfterBackOff{inner: eb, cap: r.schedule.Cap}
	policy := backoff.WithContext(backoff.WithMaxRetries(wrapped, uint64(r.schedule.MaxAttempts-1)), ctx)

	return backoff.Retry(func() error {
		retryAfter, err := operation()
		if err != nil {
			wrapped.override = retryAfter
		}
		return err
	}, policy)
}

// ParseRetryAfter parses a Retry-After header value that names a delay
// in seconds. HTTP-date values are not supported, matching the donor's
// seconds-only parsing.
func ParseRetryAfter(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
