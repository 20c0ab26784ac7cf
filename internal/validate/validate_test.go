package validate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
	"github.com/chayuto/ai-truffle-hog/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name     string
	endpoint string
}

func (f fakeProvider) Name() string        { return f.name }
func (f fakeProvider) DisplayName() string { return f.name }
func (f fakeProvider) Patterns() []provider.Pattern { return nil }
func (f fakeProvider) ValidationEndpoint() string   { return f.endpoint }
func (f fakeProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{Method: "GET", URL: f.endpoint}
}
func (f fakeProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	if statusCode == 200 {
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "ok", nil, now)
	}
	return model.NewNotAttempted().Transition(model.Invalid, statusCode, "rejected", nil, now)
}

func newTestRegistry(t *testing.T, server *httptest.Server) *provider.Registry {
	t.Helper()
	r := provider.NewRegistry()
	r.Register(fakeProvider{name: "fake", endpoint: server.URL})
	return r
}

func TestValidateOneClassifiesByStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	client := validate.NewClient(validate.Options{Registry: newTestRegistry(t, server)})
	cand := model.NewCandidate("fake", "pattern", "f.go", 1, 1, 5, "secret")

	result := client.ValidateOne(context.Background(), cand)
	assert.Equal(t, model.Valid, result.Validation.Classification)
}

func TestValidateOneUnknownProviderIsSkipped(t *testing.T) {
	client := validate.NewClient(validate.Options{Registry: provider.NewRegistry()})
	cand := model.NewCandidate("nonexistent", "pattern", "f.go", 1, 1, 5, "secret")

	result := client.ValidateOne(context.Background(), cand)
	assert.Equal(t, model.Skipped, result.Validation.Classification)
}

func TestValidateOneIsIdempotentOnAlreadyClassifiedCandidate(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(200)
	}))
	defer server.Close()

	client := validate.NewClient(validate.Options{Registry: newTestRegistry(t, server)})
	cand := model.NewCandidate("fake", "pattern", "f.go", 1, 1, 5, "secret")

	once := client.ValidateOne(context.Background(), cand)
	twice := client.ValidateOne(context.Background(), once)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, once.Validation.Classification, twice.Validation.Classification)
}

func TestValidateBatchPreservesInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	client := validate.NewClient(validate.Options{
		Registry:      newTestRegistry(t, server),
		MaxConcurrent: 2,
	})

	candidates := make([]model.Candidate, 0, 6)
	for i := 0; i < 6; i++ {
		candidates = append(candidates, model.NewCandidate("fake", "pattern", "f.go", i+1, 1, 5, "secret"))
	}

	results := client.ValidateBatch(context.Background(), candidates)
	require.Len(t, results, len(candidates))
	for i := range candidates {
		assert.Equal(t, candidates[i].ID, results[i].ID)
		assert.Equal(t, model.Valid, results[i].Validation.Classification)
	}
}

func TestValidateOneTransportErrorIsProbeError(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(fakeProvider{name: "fake", endpoint: "http://127.0.0.1:1"})
	client := validate.NewClient(validate.Options{Registry: r})
	cand := model.NewCandidate("fake", "pattern", "f.go", 1, 1, 5, "secret")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result := client.ValidateOne(ctx, cand)
	assert.Equal(t, model.ProbeError, result.Validation.Classification)
}

func TestValidateOneLeavesCandidateNotAttemptedOnCancellationBeforeProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	client := validate.NewClient(validate.Options{Registry: newTestRegistry(t, server)})
	cand := model.NewCandidate("fake", "pattern", "f.go", 1, 1, 5, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.ValidateOne(ctx, cand)
	assert.Equal(t, model.NotAttempted, result.Validation.Classification)
}

func TestValidateBatchReturnsPartialResultsOnCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(200)
	}))
	defer server.Close()
	defer close(release)

	client := validate.NewClient(validate.Options{
		Registry:      newTestRegistry(t, server),
		MaxConcurrent: 1,
	})

	candidates := make([]model.Candidate, 0, 4)
	for i := 0; i < 4; i++ {
		candidates = append(candidates, model.NewCandidate("fake", "pattern", "f.go", i+1, 1, 5, "secret"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := client.ValidateBatch(ctx, candidates)
	require.Len(t, results, len(candidates))
	for _, r := range results {
		assert.NotEqual(t, model.ProbeError, r.Validation.Classification)
	}
}

func TestValidateOneRespectsConcurrencyBound(t *testing.T) {
	var inFlight, maxObserved int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			observed := atomic.LoadInt32(&maxObserved)
			if cur <= observed || atomic.CompareAndSwapInt32(&maxObserved, observed, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.WriteHeader(200)
	}))
	defer server.Close()

	client := validate.NewClient(validate.Options{
		Registry:      newTestRegistry(t, server),
		MaxConcurrent: 3,
		Limiters:      ratelimit.NewLimitersWithDefaults(1000, 1000),
	})

	candidates := make([]model.Candidate, 0, 12)
	for i := 0; i < 12; i++ {
		candidates = append(candidates, model.NewCandidate("fake", "pattern", "f.go", i+1, 1, 5, "secret"))
	}

	client.ValidateBatch(context.Background(), candidates)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxObserved), int32(3))
}
