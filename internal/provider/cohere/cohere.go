// Package cohere registers the Cohere provider. Unlike the other
// providers, Cohere's secret format alone is not distinctive enough to
// detect reliably, so both of its patterns are contextual: they require
// either a nearby mention of the word "cohere" or an assignment to a
// variable literally named COHERE_API_KEY (spec.md §4.1.1).
package cohere

import (
	"bytes"
	"encoding/json"
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "cohere"
	displayName        = "Cohere"
	validationEndpoint = "https://api.cohere.ai/v1/check-api-key"
)

var (
	// nearbyMentionPattern requires the literal word "cohere" within 30
	// characters before the candidate secret.
	nearbyMentionPattern = regexp.MustCompile(`(?i)cohere.{0,30}?([A-Za-z0-9]{40})`)

	// envAssignmentPattern requires an explicit COHERE_API_KEY assignment.
	envAssignmentPattern = regexp.MustCompile(`COHERE_API_KEY\s*[:=]\s*['"]?([A-Za-z0-9]{40})`)
)

type cohereProvider struct{}

func (cohereProvider) Name() string        { return name }
func (cohereProvider) DisplayName() string { return displayName }

func (cohereProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{
		{Name: "nearby-mention", Regexp: nearbyMentionPattern},
		{Name: "env-assignment", Regexp: envAssignmentPattern},
	}
}

func (cohereProvider) ValidationEndpoint() string { return validationEndpoint }

func (cohereProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "POST",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
			"content-type":  "application/json",
		},
		Body: []byte("{}"),
	}
}

func (cohereProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		var parsed struct {
			Valid bool `json:"valid"`
		}
		_ = json.Unmarshal(bytes.TrimSpace(body), &parsed)
		if parsed.Valid {
			return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
		}
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key reported invalid", nil, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(cohereProvider{})
}
