package config

import "time"

// Default option values per the scanner's external configuration contract.
const (
	DefaultContextLines      = 3
	DefaultEntropyThreshold  = 4.5
	DefaultValidatorEnabled  = false
	DefaultValidatorTimeout  = 10 * time.Second
	DefaultMaxConcurrent     = 5
	DefaultRedactionPrefix   = 8
	DefaultRedactionSuffix   = 4
	DefaultRedactionMinLen   = 12
)

// ScannerOptions controls the pattern scanner (C3).
type ScannerOptions struct {
	// ContextLines is the number of lines of context captured before and
	// after each match.
	ContextLines int

	// EntropyThreshold is a consumer-side filter value; the scanner itself
	// never drops a candidate based on entropy.
	EntropyThreshold float64

	// ProviderFilter restricts scanning to the named providers. An empty
	// set means "all registered providers".
	ProviderFilter map[string]bool
}

// ValidatorOptions controls the validation client (C4).
type ValidatorOptions struct {
	Enabled        bool
	TimeoutSeconds int
	MaxConcurrent  int
}

// RedactionOptions holds the redaction.* settings, mirroring
// internal/entropy.RedactOptions. The report emitters do not read them:
// they always redact with entropy.DefaultRedactOptions().
type RedactionOptions struct {
	PrefixChars int
	SuffixChars int
	MinLength   int
}

// Options is the full, flat configuration surface recognized by the core,
// per spec.md §6. It is constructed from a Store via FromStore, or built
// directly by callers/tests.
type Options struct {
	Scanner   ScannerOptions
	Validator ValidatorOptions
	Redaction RedactionOptions
}

// DefaultOptions returns the documented defaults for every recognized
// configuration key.
func DefaultOptions() Options {
	return Options{
		Scanner: ScannerOptions{
			ContextLines:     DefaultContextLines,
			EntropyThreshold: DefaultEntropyThreshold,
			ProviderFilter:   nil,
		},
		Validator: ValidatorOptions{
			Enabled:        DefaultValidatorEnabled,
			TimeoutSeconds: int(DefaultValidatorTimeout / time.Second),
			MaxConcurrent:  DefaultMaxConcurrent,
		},
		Redaction: RedactionOptions{
			PrefixChars: DefaultRedactionPrefix,
			SuffixChars: DefaultRedactionSuffix,
			MinLength:   DefaultRedactionMinLen,
		},
	}
}

// FromStore builds an Options value from a Store, falling back to
// DefaultOptions for any field its overlay leaves nil.
func FromStore(s *Store) Options {
	opts := DefaultOptions()
	if s == nil {
		return opts
	}

	if sc := s.Scanner; sc != nil {
		if sc.ContextLines != nil {
			opts.Scanner.ContextLines = *sc.ContextLines
		}
		if sc.EntropyThreshold != nil {
			opts.Scanner.EntropyThreshold = *sc.EntropyThreshold
		}
		if len(sc.ProviderFilter) > 0 {
			filter := make(map[string]bool, len(sc.ProviderFilter))
			for _, n := range sc.ProviderFilter {
				filter[n] = true
			}
			opts.Scanner.ProviderFilter = filter
		}
	}

	if v := s.Validator; v != nil {
		if v.Enabled != nil {
			opts.Validator.Enabled = *v.Enabled
		}
		if v.TimeoutSeconds != nil {
			opts.Validator.TimeoutSeconds = *v.TimeoutSeconds
		}
		if v.MaxConcurrent != nil {
			opts.Validator.MaxConcurrent = *v.MaxConcurrent
		}
	}

	if r := s.Redaction; r != nil {
		if r.PrefixChars != nil {
			opts.Redaction.PrefixChars = *r.PrefixChars
		}
		if r.SuffixChars != nil {
			opts.Redaction.SuffixChars = *r.SuffixChars
		}
		if r.MinLength != nil {
			opts.Redaction.MinLength = *r.MinLength
		}
	}

	return opts
}
