package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	t.Parallel()

	worker := func(ctx context.Context, data int) (any, error) {
		return data * 2, nil
	}

	pool := NewPool(5, worker)
	require.NotNil(t, pool)
	assert.Equal(t, 5, pool.workers)
}

func TestPoolProcess(t *testing.T) {
	t.Parallel()

	t.Run("process items successfully", func(t *testing.T) {
		worker := func(ctx context.Context, data int) (any, error) {
			return data * 2, nil
		}

		pool := NewPool(3, worker)
		items := []int{1, 2, 3, 4, 5}

		ctx := context.Background()
		results, err := pool.Process(ctx, items)

		require.NoError(t, err)
		assert.Len(t, results, 5)

		// Check results
		for _, task := range results {
			assert.NoError(t, task.Err)
			expected := task.Data * 2
			assert.Equal(t, expected, task.Result)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		worker := func(ctx context.Context, data int) (any, error) {
			return data * 2, nil
		}

		pool := NewPool(3, worker)
		ctx := context.Background()
		results, err := pool.Process(ctx, []int{})

		require.NoError(t, err)
		assert.Len(t, results, 0)
	})

	t.Run("worker returns error", func(t *testing.T) {
		worker := func(ctx context.Context, data int) (any, error) {
			if data == 2 {
				return nil, errors.New("error processing 2")
			}
			return data * 2, nil
		}

		pool := NewPool(3, worker)
		items := []int{1, 2, 3}

		ctx := context.Background()
		results, err := pool.Process(ctx, items)

		require.NoError(t, err)
		assert.Len(t, results, 3)

		// Find the error task
		for _, task := range results {
			if task.Data == 2 {
				assert.Error(t, task.Err)
			} else {
				assert.NoError(t, task.Err)
			}
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		worker := func(ctx context.Context, data int) (any, error) {
			time.Sleep(100 * time.Millisecond)
			return data * 2, nil
		}

		pool := NewPool(2, worker)
		items := []int{1, 2, 3, 4, 5}

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		results, err := pool.Process(ctx, items)

		// Should return context error
		assert.Error(t, err)
		// Results may be partial
		assert.LessOrEqual(t, len(results), 5)
	})
}

func TestPoolStartStop(t *testing.T) {
	t.Parallel()

	t.Run("manual start and stop", func(t *testing.T) {
		worker := func(ctx context.Context, data int) (any, error) {
			return data * 2, nil
		}

		pool := NewPool(2, worker)
		ctx := context.Background()

		pool.Start(ctx)

		// Submit tasks manually
		pool.Submit(1)
		pool.Submit(2)
		pool.Submit(3)

		pool.Stop()

		// Collect results
		results := make([]*Task[int], 0)
		for task := range pool.Results() {
			results = append(results, task)
		}

		assert.Len(t, results, 3)
	})
}

func TestPoolResults(t *testing.T) {
	t.Parallel()

	worker := func(ctx context.Context, data int) (any, error) {
		return data * 2, nil
	}

	pool := NewPool(2, worker)
	ctx := context.Background()

	pool.Start(ctx)

	// Submit tasks
	pool.Submit(1)
	pool.Submit(2)

	pool.Stop()

	// Verify results channel is closed
	count := 0
	for range pool.Results() {
		count++
	}

	assert.Equal(t, 2, count)
}
