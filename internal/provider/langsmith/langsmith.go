// Package langsmith registers the LangSmith provider.
package langsmith

import (
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "langsmith"
	displayName        = "LangSmith"
	validationEndpoint = "https://api.smith.langchain.com/api/v1/sessions"
)

var keyPattern = regexp.MustCompile(`\b(lsv2_(?:sk|pt)_[A-Za-z0-9]{32,})\b`)

type langsmithProvider struct{}

func (langsmithProvider) Name() string        { return name }
func (langsmithProvider) DisplayName() string { return displayName }

func (langsmithProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "api-key", Regexp: keyPattern}}
}

func (langsmithProvider) ValidationEndpoint() string { return validationEndpoint }

func (langsmithProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"x-api-key": key,
		},
	}
}

func (langsmithProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	case 403:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live but scoped", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(langsmithProvider{})
}
