// Package config implements the scanner's configuration surface
// (spec.md §6): the scanner, validator, and redaction option groups
// loaded from an optional YAML file and overlaid onto DefaultOptions.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScannerOverlay, ValidatorOverlay, and RedactionOverlay mirror
// ScannerOptions, ValidatorOptions, and RedactionOptions field-for-field,
// but every scalar is a pointer so a Store can tell "absent from the
// file, use the documented default" apart from "explicitly set to the
// zero value" — int/bool/float64 zero values are all valid settings here
// (e.g. validator.enabled: false, redaction.prefix_chars: 0).
type ScannerOverlay struct {
	ContextLines     *int     `yaml:"context_lines"`
	EntropyThreshold *float64 `yaml:"entropy_threshold"`
	ProviderFilter   []string `yaml:"provider_filter"`
}

type ValidatorOverlay struct {
	Enabled        *bool `yaml:"enabled"`
	TimeoutSeconds *int  `yaml:"timeout_seconds"`
	MaxConcurrent  *int  `yaml:"max_concurrent"`
}

type RedactionOverlay struct {
	PrefixChars *int `yaml:"prefix_chars"`
	SuffixChars *int `yaml:"suffix_chars"`
	MinLength   *int `yaml:"min_length"`
}

// Store holds one loaded (or directly constructed) configuration
// overlay, one optional group per Options section. The yaml tags here
// are the single source of truth for spec.md §6's documented key names.
type Store struct {
	Scanner   *ScannerOverlay   `yaml:"scanner"`
	Validator *ValidatorOverlay `yaml:"validator"`
	Redaction *RedactionOverlay `yaml:"redaction"`
}

// NewStore returns an empty Store; FromStore(NewStore()) equals
// DefaultOptions().
func NewStore() *Store {
	return &Store{}
}

// LoadYAMLFile decodes path into s, replacing any previously loaded
// overlay. Decoding runs with KnownFields enabled: a section or key
// outside spec.md §6's documented set is a load-time error rather than
// a silently ignored no-op, so a typo'd config key is caught before the
// scan runs instead of producing a confusing default-value mismatch.
func (s *Store) LoadYAMLFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var loaded Store
	if err := dec.Decode(&loaded); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	*s = loaded
	return nil
}
