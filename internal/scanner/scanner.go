// Package scanner implements the pattern scanner (C3): turning a text
// buffer into an ordered, deduplicated sequence of Candidates by running
// every registered provider's patterns against it.
//
// Grounded on the pack's VIGILUM PatternDetector.DetectFromSource
// (iterate providers, iterate each provider's compiled patterns, find
// all matches, compute a line number from a byte offset via
// strings.Count(prefix, "\n")) and the teacher's diffparse line/column
// bookkeeping conventions, generalized from "vulnerability pattern" to
// "credential pattern" and extended with column tracking, context
// windows, and variable-name extraction, none of which the teacher's
// diff-only domain needed.
package scanner

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chayuto/ai-truffle-hog/internal/entropy"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
)

// ScanOptions parameterizes ScanBuffer.
type ScanOptions struct {
	// ContextLines is the number of lines of surrounding context to
	// capture before and after a match. Zero means no context.
	ContextLines int

	// ProviderFilter restricts scanning to providers whose name is a key
	// in this map with a true value. A nil or empty map scans all
	// providers.
	ProviderFilter map[string]bool

	// Providers overrides the provider set to scan, in registration
	// order. If nil, provider.Default.All() is used.
	Providers []provider.Provider
}

// variableNamePattern recognizes the assignment forms spec.md §4.3
// names: `IDENT = "..."`, `IDENT: "..."`, `"key": "..."`. It is matched
// against the tail of the text immediately preceding a secret.
var variableNamePattern = regexp.MustCompile(`(?:"([A-Za-z_][A-Za-z0-9_]*)"|([A-Za-z_][A-Za-z0-9_]*))\s*[:=]\s*["']?$`)

// ScanBuffer finds every Candidate in text, ordered and deduplicated per
// spec.md §4.3. fileLabel is an opaque identifier stored on each
// Candidate; ScanBuffer does not interpret it.
//
// ScanBuffer returns an eager slice rather than a lazy sequence — Go has
// no native generator construct, and a slice satisfies "consumed once,
// deterministic order" closely enough for every caller in this module.
func ScanBuffer(text, fileLabel string, opts ScanOptions) []model.Candidate {
	if text == "" {
		return nil
	}

	providers := opts.Providers
	if providers == nil {
		providers = provider.Default.All()
	}

	type rawMatch struct {
		candidate       model.Candidate
		line, column    int
		providerIndex   int
		patternIndex    int
	}

	var raw []rawMatch

	for providerIdx, p := range providers {
		if len(opts.ProviderFilter) > 0 && !opts.ProviderFilter[p.Name()] {
			continue
		}
		for patternIdx, pat := range p.Patterns() {
			locs := pat.Regexp.FindAllStringSubmatchIndex(text, -1)
			for _, loc := range locs {
				if len(loc) < 4 || loc[2] < 0 || loc[3] < 0 {
					continue
				}
				secretStart, secretEnd := loc[2], loc[3]
				secret := text[secretStart:secretEnd]

				line, columnStart, columnEnd := position(text, secretStart, secretEnd)
				context := contextWindow(text, line, opts.ContextLines)
				variableName := extractVariableName(text, secretStart)

				c := model.NewCandidate(p.Name(), pat.Name, fileLabel, line, columnStart, columnEnd, secret)
				c.Context = context
				c.VariableName = variableName
				c.Entropy = entropy.Shannon(secret)

				raw = append(raw, rawMatch{
					candidate:     c,
					line:          line,
					column:        columnStart,
					providerIndex: providerIdx,
					patternIndex:  patternIdx,
				})
			}
		}
	}

	sort.SliceStable(raw, func(i, j int) bool {
		a, b := raw[i], raw[j]
		if a.line != b.line {
			return a.line < b.line
		}
		if a.column != b.column {
			return a.column < b.column
		}
		if a.providerIndex != b.providerIndex {
			return a.providerIndex < b.providerIndex
		}
		return a.patternIndex < b.patternIndex
	})

	seen := make(map[string]struct{}, len(raw))
	out := make([]model.Candidate, 0, len(raw))
	for _, m := range raw {
		key := m.candidate.DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m.candidate)
	}
	return out
}

// position converts a byte range into a 1-based line number and
// 1-based, exclusive-end rune column range. The line number is always
// that of the range's start, per spec.md's rule for matches that span a
// line boundary.
func position(text string, start, end int) (line, columnStart, columnEnd int) {
	prefix := text[:start]
	line = 1 + strings.Count(prefix, "\n")

	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	columnStart = 1 + len([]rune(text[lineStart:start]))
	columnEnd = columnStart + len([]rune(text[start:end]))
	return line, columnStart, columnEnd
}

// contextWindow extracts up to n lines before and after the 1-based
// line, joined by "\n" and trimmed of surrounding whitespace.
func contextWindow(text string, line, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	from := idx - n
	if from < 0 {
		from = 0
	}
	to := idx + n + 1
	if to > len(lines) {
		to = len(lines)
	}
	return strings.TrimSpace(strings.Join(lines[from:to], "\n"))
}

// extractVariableName inspects the up to 100 characters immediately
// preceding a secret's start for a recognizable assignment form.
func extractVariableName(text string, secretStart int) string {
	lookback := 100
	from := secretStart - lookback
	if from < 0 {
		from = 0
	}
	preceding := text[from:secretStart]

	matches := variableNamePattern.FindStringSubmatch(preceding)
	if matches == nil {
		return ""
	}
	if matches[1] != "" {
		return matches[1]
	}
	return matches[2]
}
