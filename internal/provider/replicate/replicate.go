// Package replicate registers the Replicate provider.
package replicate

import (
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "replicate"
	displayName        = "Replicate"
	validationEndpoint = "https://api.replicate.com/v1/account"
)

var keyPattern = regexp.MustCompile(`\b(r8_[A-Za-z0-9]{37})\b`)

type replicateProvider struct{}

func (replicateProvider) Name() string        { return name }
func (replicateProvider) DisplayName() string { return displayName }

func (replicateProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "api-token", Regexp: keyPattern}}
}

func (replicateProvider) ValidationEndpoint() string { return validationEndpoint }

func (replicateProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (replicateProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
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
	provider.Register(replicateProvider{})
}
