// Package provider defines the contract every AI-service credential
// provider must satisfy (C1): its detection patterns, its authentication
// surface, and its response-interpretation rules. The package also holds
// the process-wide registry of providers, exposed as a uniform,
// polymorphic collection — adding a provider never changes the scanner or
// the validation client.
//
// Design follows the teacher repository's provider abstraction: a small
// interface surface, package-per-provider implementations, and a
// factory/registry pattern for discovery — generalized here from "AI chat
// completion provider" to "AI credential provider under test".
package provider

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// Pattern is one compiled detection pattern belonging to a Provider. The
// regular expression must contain at least one capturing group; capture
// group 1 is always the secret substring (spec.md §4.1).
type Pattern struct {
	// Name identifies the pattern within its provider, e.g. "api-key"
	// or "admin-key". Used to build SARIF rule IDs as "{provider}/{name}".
	Name string

	// Regexp is compiled once, at registration time.
	Regexp *regexp.Regexp
}

// HTTPRequest is the provider-agnostic shape build_probe_request returns:
// enough to issue exactly one liveness probe.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Provider is the capability set every registered AI credential provider
// satisfies (spec.md §4.1). Implementations are immutable singletons;
// none of these methods hold request-scoped state.
type Provider interface {
	// Name is the stable identifier used in configuration and reports,
	// e.g. "openai".
	Name() string

	// DisplayName is the human-readable name, e.g. "OpenAI".
	DisplayName() string

	// Patterns returns this provider's ordered, non-empty detection
	// pattern set.
	Patterns() []Pattern

	// ValidationEndpoint is the URL probed for liveness.
	ValidationEndpoint() string

	// BuildProbeRequest returns the exact HTTP request to issue to prove
	// key is live. Implementations must never request more than the
	// smallest possible liveness check (spec.md §4.4's "no billable
	// generation beyond max_tokens=1-equivalent" safety invariant).
	BuildProbeRequest(key string) HTTPRequest

	// ClassifyResponse is a pure, total function from a probe's outcome
	// to a ValidationResult. It must never panic or return a
	// classification outside the closed enum in package model.
	ClassifyResponse(statusCode int, body []byte) model.ValidationResult
}
