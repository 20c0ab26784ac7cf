// Package groq registers the Groq provider.
package groq

import (
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "groq"
	displayName        = "Groq"
	validationEndpoint = "https://api.groq.com/openai/v1/models"
)

var keyPattern = regexp.MustCompile(`\b(gsk_[A-Za-z0-9]{50,})\b`)

type groqProvider struct{}

func (groqProvider) Name() string        { return name }
func (groqProvider) DisplayName() string { return displayName }

func (groqProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "api-key", Regexp: keyPattern}}
}

func (groqProvider) ValidationEndpoint() string { return validationEndpoint }

func (groqProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (groqProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(groqProvider{})
}
