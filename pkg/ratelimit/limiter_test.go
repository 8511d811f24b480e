package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter(limit int) (*SlidingWindowLimiter, *clock) {
	c := &clock{t: time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(limit, time.Minute)
	l.now = c.now
	return l, c
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(2)

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "third request inside the window")

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok, "keys are limited independently")

	c.t = c.t.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok, "window has slid past the earlier requests")
}

func TestSlidingWindowLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(1)

	ok, _ := l.Allow(ctx, "a")
	require.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	require.False(t, ok)

	require.NoError(t, l.Reset(ctx, "a"))
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
}

func TestSlidingWindowLimiter_Prune(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(5)

	_, _ = l.Allow(ctx, "old")
	c.t = c.t.Add(45 * time.Second)
	_, _ = l.Allow(ctx, "recent")
	c.t = c.t.Add(30 * time.Second)

	assert.Equal(t, 1, l.Prune())
	assert.Len(t, l.windows, 1)
	assert.Contains(t, l.windows, "recent")
}

func TestSlidingWindowLimiter_SweepKeepsActiveWindows(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(50)
	l.maxKeys = 2

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// New keys keep triggering sweeps while the hot key fills up
			_, _ = l.Allow(ctx, fmt.Sprintf("client-%d", i))
			if ok, _ := l.Allow(ctx, "hot"); ok {
				allowed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
	ok, _ := l.Allow(ctx, "hot")
	assert.False(t, ok, "hot window survived every sweep")
}

func TestIPRateLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewIPRateLimiter(1)

	ok, err := l.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.Allow(ctx, "192.0.2.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "192.0.2.2")
	assert.True(t, ok)
}
