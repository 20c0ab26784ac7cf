// Package report renders a ScanSession in the three formats spec.md §6
// names: a human-readable table, JSON matching the ScanSession shape,
// and SARIF 2.1.0.
//
// The table writer is grounded on
// vasic-digital-SuperAgent/cmd/helixagent/challenges.go's
// handleListChallenges: tabwriter.NewWriter with a header row, a dashed
// separator row, one row per item, Flush, then a trailing summary line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/chayuto/ai-truffle-hog/internal/entropy"
	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// WriteTable renders session as a human-readable table to w: one row
// per Candidate across every ScanResult, secret values always redacted.
func WriteTable(w io.Writer, session model.ScanSession) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PROVIDER\tPATTERN\tFILE\tLINE\tSECRET\tVALIDATION\n")
	fmt.Fprintf(tw, "--------\t-------\t----\t----\t------\t----------\n")

	for _, result := range session.Results {
		for _, c := range result.Candidates {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
				c.Provider, c.PatternName, c.FilePath, c.Line,
				entropy.Redact(c.SecretValue, entropy.DefaultRedactOptions()),
				c.Validation.Classification)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d candidate(s) across %d target(s)\n", session.TotalCandidates(), len(session.Targets))
	return nil
}

// jsonCandidate mirrors model.Candidate but redacts the secret value and
// omits internal bookkeeping the report format doesn't need to expose.
type jsonCandidate struct {
	ID             string            `json:"id"`
	Provider       string            `json:"provider"`
	PatternName    string            `json:"pattern_name"`
	FilePath       string            `json:"file_path"`
	Line           int               `json:"line"`
	ColumnStart    int               `json:"column_start"`
	ColumnEnd      int               `json:"column_end"`
	RedactedSecret string            `json:"redacted_secret"`
	VariableName   string            `json:"variable_name,omitempty"`
	Entropy        float64           `json:"entropy"`
	Classification string            `json:"classification"`
	HTTPStatusCode int               `json:"http_status_code,omitempty"`
	Message        string            `json:"message,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type jsonScanResult struct {
	Target         string          `json:"target"`
	ResolvedCommit string          `json:"resolved_commit,omitempty"`
	StartedAt      string          `json:"started_at"`
	CompletedAt    string          `json:"completed_at"`
	FilesInspected int             `json:"files_inspected"`
	Candidates     []jsonCandidate `json:"candidates"`
	Errors         []string        `json:"errors,omitempty"`
}

type jsonScanSession struct {
	ID                string           `json:"id"`
	StartedAt         string           `json:"started_at"`
	CompletedAt       string           `json:"completed_at"`
	Targets           []string         `json:"targets"`
	Results           []jsonScanResult `json:"results"`
	ValidationEnabled bool             `json:"validation_enabled"`
	TotalCandidates   int              `json:"total_candidates"`
}

// WriteJSON renders session as JSON matching the ScanSession shape of
// spec.md §3, with every secret value redacted.
func WriteJSON(w io.Writer, session model.ScanSession) error {
	out := jsonScanSession{
		ID:                session.ID,
		StartedAt:         session.StartedAt.Format(timeLayout),
		CompletedAt:       session.CompletedAt.Format(timeLayout),
		Targets:           session.Targets,
		ValidationEnabled: session.ValidationEnabled,
		TotalCandidates:   session.TotalCandidates(),
	}
	for _, r := range session.Results {
		jr := jsonScanResult{
			Target:         r.Target,
			ResolvedCommit: r.ResolvedCommit,
			StartedAt:      r.StartedAt.Format(timeLayout),
			CompletedAt:    r.CompletedAt.Format(timeLayout),
			FilesInspected: r.FilesInspected,
			Errors:         r.Errors,
		}
		for _, c := range r.Candidates {
			jr.Candidates = append(jr.Candidates, jsonCandidate{
				ID:             c.ID,
				Provider:       c.Provider,
				PatternName:    c.PatternName,
				FilePath:       c.FilePath,
				Line:           c.Line,
				ColumnStart:    c.ColumnStart,
				ColumnEnd:      c.ColumnEnd,
				RedactedSecret: entropy.Redact(c.SecretValue, entropy.DefaultRedactOptions()),
				VariableName:   c.VariableName,
				Entropy:        c.Entropy,
				Classification: string(c.Validation.Classification),
				HTTPStatusCode: c.Validation.HTTPStatusCode,
				Message:        c.Validation.Message,
				Metadata:       c.Validation.Metadata,
			})
		}
		out.Results = append(out.Results, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// sarifLevel maps a ValidationClassification to a SARIF result level.
func sarifLevel(c model.ValidationClassification) string {
	switch c {
	case model.Valid:
		return "error"
	case model.QuotaExceeded, model.RateLimited, model.ProbeError, model.Skipped, model.NotAttempted:
		return "warning"
	case model.Invalid:
		return "note"
	default:
		return "warning"
	}
}

func ruleID(c model.Candidate) string {
	return strings.Join([]string{c.Provider, c.PatternName}, "/")
}
