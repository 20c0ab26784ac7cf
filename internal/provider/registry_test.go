package provider_test

import (
	"regexp"
	"testing"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
}

func (s stubProvider) Name() string        { return s.name }
func (s stubProvider) DisplayName() string { return s.name }
func (s stubProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "stub", Regexp: regexp.MustCompile(`(stub-[a-z]+)`)}}
}
func (s stubProvider) ValidationEndpoint() string { return "https://example.invalid/v1/models" }
func (s stubProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{Method: "GET", URL: s.ValidationEndpoint()}
}
func (s stubProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	return model.NewNotAttempted()
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(stubProvider{name: "stub"})

	p, ok := r.Get("stub")
	require.True(t, ok)
	assert.Equal(t, "stub", p.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryPanicsOnDuplicateRegistration(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(stubProvider{name: "stub"})

	assert.Panics(t, func() {
		r.Register(stubProvider{name: "stub"})
	})
}

func TestRegistryAllPreservesRegistrationOrder(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(stubProvider{name: "zeta"})
	r.Register(stubProvider{name: "alpha"})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "zeta", all[0].Name())
	assert.Equal(t, "alpha", all[1].Name())
}

func TestRegistryNamesIsSortedRegardlessOfRegistrationOrder(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(stubProvider{name: "zeta"})
	r.Register(stubProvider{name: "alpha"})

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}
