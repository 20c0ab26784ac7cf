// Package ratelimit implements the token-bucket rate limiter (C5) the
// validation client paces its per-provider probes with.
//
// Grounded on rcourtman-Pulse's cmd/pulse-sensor-proxy/throttle.go: a
// golang.org/x/time/rate.Limiter per key, lazily created under a mutex,
// plus a context-aware acquire alongside a non-blocking variant. FIFO
// waiter fairness (spec.md §4.5) comes directly from rate.Limiter.Wait,
// which queues reservations in arrival order.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Conservative catalog-wide defaults (spec.md §4.5): no provider bucket
// exceeds 5 requests/second with a burst of 10.
const (
	DefaultRate  = 5
	DefaultBurst = 10
)

// Bucket is a single token bucket.
type Bucket struct {
	limiter *rate.Limiter
}

// NewBucket creates a bucket with steady-state rate r (tokens/second)
// and burst capacity b.
func NewBucket(r float64, b int) *Bucket {
	return &Bucket{limiter: rate.NewLimiter(rate.Limit(r), b)}
}

// Acquire blocks until n tokens are available, or ctx is cancelled.
func (bk *Bucket) Acquire(ctx context.Context, n int) error {
	return bk.limiter.WaitN(ctx, n)
}

// TryAcquire is the non-blocking variant: it reports whether n tokens
// were immediately available, consuming them if so.
func (bk *Bucket) TryAcquire(n int) bool {
	return bk.limiter.AllowN(time.Now(), n)
}

// Limiters is a concurrency-safe, lazily-populated set of Buckets keyed
// by provider name — the validation client's "one bucket per provider"
// requirement (spec.md §4.5).
type Limiters struct {
	mu      sync.Mutex
	buckets map[string]*Bucket
	rate    float64
	burst   int
}

// NewLimiters returns a Limiters set that creates DefaultRate/DefaultBurst
// buckets on first use of each key.
func NewLimiters() *Limiters {
	return &Limiters{buckets: make(map[string]*Bucket), rate: DefaultRate, burst: DefaultBurst}
}

// NewLimitersWithDefaults returns a Limiters set using the given
// steady-state rate and burst for every newly created bucket.
func NewLimitersWithDefaults(r float64, b int) *Limiters {
	return &Limiters{buckets: make(map[string]*Bucket), rate: r, burst: b}
}

// Get returns the bucket for key, creating it on first use.
func (l *Limiters) Get(key string) *Bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	bk, ok := l.buckets[key]
	if !ok {
		bk = NewBucket(l.rate, l.burst)
		l.buckets[key] = bk
	}
	return bk
}
