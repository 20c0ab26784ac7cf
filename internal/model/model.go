// Package model holds the shared data types produced by the scanner and
// the validation client: Candidate, ScanResult, ScanSession, and the
// closed ValidationClassification enum.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ValidationClassification is the closed set of liveness outcomes a
// validation probe can produce.
type ValidationClassification string

const (
	NotAttempted  ValidationClassification = "not_attempted"
	Valid         ValidationClassification = "valid"
	Invalid       ValidationClassification = "invalid"
	QuotaExceeded ValidationClassification = "quota_exceeded"
	RateLimited   ValidationClassification = "rate_limited"
	ProbeError    ValidationClassification = "probe_error"
	Skipped       ValidationClassification = "skipped"
)

// terminal reports whether a classification, once reached, does not
// transition again.
func (c ValidationClassification) terminal() bool {
	return c != NotAttempted
}

// ValidationResult carries a Candidate's liveness classification plus the
// evidence that produced it.
type ValidationResult struct {
	Classification ValidationClassification
	HTTPStatusCode int
	Message        string
	Metadata       map[string]string
	CheckedAt      *time.Time
}

// NewNotAttempted is the zero-value validation state every Candidate
// starts with.
func NewNotAttempted() ValidationResult {
	return ValidationResult{Classification: NotAttempted}
}

// Transition moves a ValidationResult to a new classification, enforcing
// the monotonicity invariant from spec.md §3: NotAttempted may transition
// to any other state exactly once; terminal states never change except by
// idempotent re-application of the same terminal classification (which is
// a no-op, matching §8's "validate is idempotent on already-classified
// candidates" law).
//
// A caller attempting to overwrite a terminal classification with a
// different one is a programmer error (contract violation, spec.md §7)
// and panics rather than silently corrupting state.
func (v ValidationResult) Transition(next ValidationClassification, statusCode int, message string, metadata map[string]string, at time.Time) ValidationResult {
	if v.Classification.terminal() {
		if v.Classification == next {
			return v
		}
		panic(fmt.Sprintf("model: illegal validation transition from terminal state %q to %q", v.Classification, next))
	}
	checkedAt := at
	return ValidationResult{
		Classification: next,
		HTTPStatusCode: statusCode,
		Message:        message,
		Metadata:       metadata,
		CheckedAt:      &checkedAt,
	}
}

// Candidate represents a single positioned potential-secret match.
type Candidate struct {
	// Identity
	ID          string // opaque, assigned once at creation
	Provider    string // registered provider name, e.g. "openai"
	PatternName string // the Pattern that produced this match

	// Location
	FilePath    string
	Line        int // 1-based
	ColumnStart int // 1-based, rune offset
	ColumnEnd   int // 1-based, rune offset, exclusive

	// Content
	SecretValue  string
	Context      string // ContextLines of surrounding text, spec.md §4.3
	VariableName string // heuristic extraction; empty if none found

	// Metrics
	Entropy float64 // Shannon entropy of SecretValue, in bits/char

	// Classification
	Validation ValidationResult
}

// NewCandidate builds a Candidate with a fresh opaque ID and the
// not-attempted validation state, per spec.md §3.
func NewCandidate(provider, patternName, filePath string, line, columnStart, columnEnd int, secret string) Candidate {
	return Candidate{
		ID:          uuid.NewString(),
		Provider:    provider,
		PatternName: patternName,
		FilePath:    filePath,
		Line:        line,
		ColumnStart: columnStart,
		ColumnEnd:   columnEnd,
		SecretValue: secret,
		Validation:  NewNotAttempted(),
	}
}

// DedupeKey returns the tuple spec.md §3 and §4.3 use to discard duplicate
// candidates within one scan: (file_path, line_number, column_start,
// secret_value).
func (c Candidate) DedupeKey() string {
	return fmt.Sprintf("%s\x00%d\x00%d\x00%s", c.FilePath, c.Line, c.ColumnStart, c.SecretValue)
}

// ScanResult aggregates everything found while scanning one target
// (a local path or a remote repository URL).
type ScanResult struct {
	Target         string
	ResolvedCommit string
	StartedAt      time.Time
	CompletedAt    time.Time
	FilesInspected int
	Candidates     []Candidate
	Errors         []string
}

// Duration returns the elapsed time between start and completion. It
// returns 0 if the result has not yet completed.
func (r ScanResult) Duration() time.Duration {
	if r.CompletedAt.IsZero() || r.CompletedAt.Before(r.StartedAt) {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// ScanSession is the outermost aggregate: one invocation of the system
// from target(s) in to results out.
type ScanSession struct {
	ID                string
	StartedAt         time.Time
	CompletedAt       time.Time
	Targets           []string
	Results           []ScanResult
	ValidationEnabled bool
}

// NewScanSession creates a session with a fresh opaque ID and the given
// start time.
func NewScanSession(targets []string, validationEnabled bool, startedAt time.Time) ScanSession {
	return ScanSession{
		ID:                uuid.NewString(),
		StartedAt:         startedAt,
		Targets:           targets,
		ValidationEnabled: validationEnabled,
	}
}

// TotalCandidates returns the total candidate count across all results.
func (s ScanSession) TotalCandidates() int {
	total := 0
	for _, r := range s.Results {
		total += len(r.Candidates)
	}
	return total
}
