// Package openai registers the OpenAI provider: its API key pattern, its
// models-listing liveness probe, and its response classification rules
// (spec.md §4.1.1).
package openai

import (
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "openai"
	displayName        = "OpenAI"
	validationEndpoint = "https://api.openai.com/v1/models"
)

var keyPattern = regexp.MustCompile(`\b(sk-(?:proj-|org-|admin-|svcacct-)?[A-Za-z0-9]{20,150})\b`)

type openaiProvider struct{}

func (openaiProvider) Name() string        { return name }
func (openaiProvider) DisplayName() string { return displayName }

func (openaiProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "api-key", Regexp: keyPattern}}
}

func (openaiProvider) ValidationEndpoint() string { return validationEndpoint }

func (openaiProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

// ClassifyResponse maps a models-listing probe outcome to a
// classification. 403 indicates the key is live but scoped away from
// this endpoint, which still proves liveness.
func (openaiProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	case 403:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live but scoped", nil, now)
	case 429:
		return model.NewNotAttempted().Transition(model.QuotaExceeded, statusCode, "quota exceeded", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(openaiProvider{})
}
