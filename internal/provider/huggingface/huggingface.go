// Package huggingface registers the Hugging Face provider.
package huggingface

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "huggingface"
	displayName        = "Hugging Face"
	validationEndpoint = "https://huggingface.co/api/whoami-v2"
)

var keyPattern = regexp.MustCompile(`\b(hf_[A-Za-z0-9]{34})\b`)

type huggingfaceProvider struct{}

func (huggingfaceProvider) Name() string        { return name }
func (huggingfaceProvider) DisplayName() string { return displayName }

func (huggingfaceProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{{Name: "access-token", Regexp: keyPattern}}
}

func (huggingfaceProvider) ValidationEndpoint() string { return validationEndpoint }

func (huggingfaceProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	return provider.HTTPRequest{
		Method: "GET",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (huggingfaceProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		var parsed struct {
			Name string   `json:"name"`
			Auth []string `json:"auth"`
		}
		_ = json.Unmarshal(body, &parsed)
		metadata := map[string]string{"username": parsed.Name}
		if len(parsed.Auth) > 0 {
			metadata["scopes"] = parsed.Auth[0]
		}
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", metadata, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(huggingfaceProvider{})
}
