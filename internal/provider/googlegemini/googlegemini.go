// Package googlegemini registers the Google Gemini provider.
package googlegemini

import (
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "google_gemini"
	displayName        = "Google Gemini"
	validationEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
)

var keyPattern = regexp.MustCompile(`\b(AIza[A-Za-z0-9_-]{35})\b`)

type googleGeminiProvider struct{}

func (googleGeminiProvider) Name() string        { return name }
func (googleGeminiProvider) DisplayName() string { return displayName }

func (googleGeminiProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "api-key", Regexp: keyPattern}}
}

func (googleGeminiProvider) ValidationEndpoint() string { return validationEndpoint }

// BuildProbeRequest appends the key as a query parameter; Gemini's API
// authenticates this way rather than via an Authorization header.
func (googleGeminiProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint + "?key=" + key,
	}
}

// ClassifyResponse reads 400 and 403 as Invalid for Gemini only: AIza
// keys are shared with other Google Cloud APIs, so a key this endpoint
// rejects may still be live for a different Google service.
func (googleGeminiProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
	case 400, 403:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(googleGeminiProvider{})
}
