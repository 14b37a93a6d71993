package httpclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"seconds", "120", 120},
		{"empty", "", 0},
		{"negative", "-5", 0},
		{"http_date_unsupported", "Wed, 21 Oct 2026 07:28:00 GMT", 0},
		{"whitespace", "  30  ", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRetryAfter(tc.value))
		})
	}
}

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule(0)
	assert.Equal(t, 3, s.MaxAttempts)
	assert.Equal(t, float64(2), s.Factor)
	assert.Equal(t, 0.2, s.Jitter)
	assert.Equal(t, 500*time.Millisecond, s.Base)
	assert.Equal(t, 30*time.Second, s.Cap)

	s2 := DefaultSchedule(5)
	assert.Equal(t, 5, s2.MaxAttempts)
}

func TestRetrier_StopsOnSuccess(t *testing.T) {
	r := NewRetrier(DefaultSchedule(3))
	attempts := 0
	err := r.Retry(context.Background(), func() (int, error) {
		attempts++
		return 0, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_GivesUpAfterMaxAttempts(t *testing.T) {
	r := NewRetrier(Schedule{Base: 0, Factor: 1, Jitter: 0, Cap: 0, MaxAttempts: 3})
	attempts := 0
	boom := errors.New("boom")
	err := r.Retry(context.Background(), func() (int, error) {
		attempts++
		return 0, boom
	})
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetrier_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRetrier(DefaultSchedule(5))
	attempts := 0
	err := r.Retry(ctx, func() (int, error) {
		attempts++
		return 0, errors.New("transient")
	})
	assert.Error(t, err)
}
