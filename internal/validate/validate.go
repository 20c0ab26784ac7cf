// Package validate implements the validation client (C4): given
// Candidates, it issues at most one liveness probe per Candidate and
// records the outcome as a ValidationClassification.
//
// Grounded on the teacher's internal/provider/openai.Provider (a
// go-resty/v2 client, SetContext/SetAuthToken/SetBody request building,
// status-code based error classification) and rcourtman-Pulse's
// throttle.go for the concurrency-gate shape, generalized here from
// "one completion request" to "one liveness probe per candidate, bounded
// by a global semaphore and a per-provider token bucket".
package validate

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
)

// Options configures a Client.
type Options struct {
	// MaxConcurrent bounds the number of in-flight probes across all
	// providers (spec.md §8 property 7).
	MaxConcurrent int

	// Timeout is the hard per-request timeout.
	Timeout time.Duration

	// Registry is consulted to resolve a Candidate's provider. Defaults
	// to provider.Default when nil.
	Registry *provider.Registry

	// Limiters supplies the per-provider token buckets. A fresh
	// ratelimit.NewLimiters() is used when nil.
	Limiters *ratelimit.Limiters
}

// Client is the validation client.
type Client struct {
	http     *resty.Client
	sem      chan struct{}
	registry *provider.Registry
	limiters *ratelimit.Limiters
}

// NewClient builds a Client from Options, applying spec-mandated
// defaults for zero-valued fields.
func NewClient(opts Options) *Client {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	registry := opts.Registry
	if registry == nil {
		registry = provider.Default
	}
	limiters := opts.Limiters
	if limiters == nil {
		limiters = ratelimit.NewLimiters()
	}

	return &Client{
		http:     resty.New().SetTimeout(timeout),
		sem:      make(chan struct{}, maxConcurrent),
		registry: registry,
		limiters: limiters,
	}
}

// ValidateOne executes at most one HTTP probe for candidate and returns
// a copy with Validation updated. It never panics or returns an error:
// every failure mode is represented as a classification (spec.md §7).
func (c *Client) ValidateOne(ctx context.Context, candidate model.Candidate) model.Candidate {
	if candidate.Validation.Classification != model.NotAttempted {
		// Idempotent: an already-classified candidate is never re-probed.
		return candidate
	}

	// Cancellation is not an error (spec.md §7): a candidate cancelled
	// before its probe starts keeps whatever classification it already
	// had (NotAttempted here, since the idempotency check above already
	// returned any already-classified candidate untouched).
	if ctx.Err() != nil {
		return candidate
	}

	p, ok := c.registry.Get(candidate.Provider)
	if !ok {
		candidate.Validation = candidate.Validation.Transition(model.Skipped, 0, "unknown provider", nil, time.Now())
		return candidate
	}

	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return candidate
	}

	if err := c.limiters.Get(candidate.Provider).Acquire(ctx, 1); err != nil {
		return candidate
	}

	req := p.BuildProbeRequest(candidate.SecretValue)

	restyReq := c.http.R().SetContext(ctx)
	for k, v := range req.Headers {
		restyReq.SetHeader(k, v)
	}
	if len(req.Body) > 0 {
		restyReq.SetBody(req.Body)
	}

	resp, err := restyReq.Execute(req.Method, req.URL)
	if err != nil {
		candidate.Validation = candidate.Validation.Transition(model.ProbeError, 0, "transport error: "+err.Error(), nil, time.Now())
		return candidate
	}

	result := p.ClassifyResponse(resp.StatusCode(), resp.Body())
	candidate.Validation = candidate.Validation.Transition(result.Classification, result.HTTPStatusCode, result.Message, result.Metadata, time.Now())
	return candidate
}

// ValidateBatch runs ValidateOne over candidates with up to
// MaxConcurrent probes in flight at once. The returned slice preserves
// the input order regardless of completion order.
func (c *Client) ValidateBatch(ctx context.Context, candidates []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(candidates))

	type indexed struct {
		index int
		cand  model.Candidate
	}
	results := make(chan indexed, len(candidates))

	for i, cand := range candidates {
		go func(i int, cand model.Candidate) {
			results <- indexed{index: i, cand: c.ValidateOne(ctx, cand)}
		}(i, cand)
	}

	for range candidates {
		r := <-results
		out[r.index] = r.cand
	}
	return out
}
