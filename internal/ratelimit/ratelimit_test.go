package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketTryAcquireRespectsBurst(t *testing.T) {
	bk := ratelimit.NewBucket(1, 2)

	assert.True(t, bk.TryAcquire(1))
	assert.True(t, bk.TryAcquire(1))
	assert.False(t, bk.TryAcquire(1))
}

func TestBucketAcquireBlocksUntilTokenAvailable(t *testing.T) {
	bk := ratelimit.NewBucket(1000, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, bk.Acquire(ctx, 1))
	require.NoError(t, bk.Acquire(ctx, 1))
}

func TestBucketAcquireHonorsCancellation(t *testing.T) {
	bk := ratelimit.NewBucket(0.001, 1)
	// Drain the single burst token so the next acquire must wait.
	require.True(t, bk.TryAcquire(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := bk.Acquire(ctx, 1)
	assert.Error(t, err)
}

func TestLimitersLazilyCreatesPerKeyBuckets(t *testing.T) {
	l := ratelimit.NewLimiters()

	a := l.Get("openai")
	b := l.Get("openai")
	c := l.Get("anthropic")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
