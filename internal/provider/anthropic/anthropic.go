// Package anthropic registers the Anthropic provider.
package anthropic

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

const (
	name               = "anthropic"
	displayName        = "Anthropic"
	validationEndpoint = "https://api.anthropic.com/v1/messages"
)

var (
	standardKeyPattern = regexp.MustCompile(`\b(sk-ant-api\d{2}-[A-Za-z0-9_-]{80,120})\b`)
	adminKeyPattern    = regexp.MustCompile(`\b(sk-ant-admin-[A-Za-z0-9_-]{20,})\b`)
)

type anthropicProvider struct{}

func (anthropicProvider) Name() string        { return name }
func (anthropicProvider) DisplayName() string { return displayName }

func (anthropicProvider) Patterns() []provider.Pattern {
	return []provider.Pattern{
		{Name: "api-key", Regexp: standardKeyPattern},
		{Name: "admin-key", Regexp: adminKeyPattern},
	}
}

func (anthropicProvider) ValidationEndpoint() string { return validationEndpoint }

func (anthropicProvider) BuildProbeRequest(key string) provider.HTTPRequest {
	body, _ := json.Marshal(map[string]interface{}{
		"model":      "claude-3-haiku-20240307",
		"max_tokens": 1,
		"messages": []map[string]string{
			{"role": "user", "content": "Hi"},
		},
	})
	return provider.HTTPRequest{
		Method: "POST",
		URL:    validationEndpoint,
		Headers: map[string]string{
			"x-api-key":         key,
			"anthropic-version": "2023-06-01",
			"content-type":      "application/json",
		},
		Body: body,
	}
}

type anthropicErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ClassifyResponse disambiguates a 400 by inspecting the error message:
// a credit/balance complaint means the key itself is valid but exhausted.
func (anthropicProvider) ClassifyResponse(statusCode int, body []byte) model.ValidationResult {
	now := time.Now()
	switch statusCode {
	case 200:
		return model.NewNotAttempted().Transition(model.Valid, statusCode, "key is live", nil, now)
	case 401:
		return model.NewNotAttempted().Transition(model.Invalid, statusCode, "key rejected", nil, now)
	case 429:
		return model.NewNotAttempted().Transition(model.RateLimited, statusCode, "rate limited", nil, now)
	case 400:
		var parsed anthropicErrorBody
		_ = json.Unmarshal(body, &parsed)
		msg := strings.ToLower(parsed.Error.Message)
		if strings.Contains(msg, "credit") || strings.Contains(msg, "balance") {
			return model.NewNotAttempted().Transition(model.QuotaExceeded, statusCode, "insufficient credit balance", nil, now)
		}
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "bad request", nil, now)
	default:
		return model.NewNotAttempted().Transition(model.ProbeError, statusCode, "unexpected status", nil, now)
	}
}

func init() {
	provider.Register(anthropicProvider{})
}
