// Package session orchestrates one scan invocation end to end: resolve
// each target (a local path or a remote repository URL), walk it,
// scan every discovered file, optionally validate the candidates found,
// and assemble the results into a ScanSession.
//
// This is the thin "orchestrator's integration surface" spec.md §2
// reserves 15% of the implementation budget for; it owns no algorithm
// of its own and exists to wire C1-C5 together in the sequence spec.md
// §2's control-flow paragraph describes.
package session

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/chayuto/ai-truffle-hog/internal/config"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/repository"
	"github.com/chayuto/ai-truffle-hog/internal/scanner"
	"github.com/chayuto/ai-truffle-hog/internal/validate"
	"github.com/chayuto/ai-truffle-hog/internal/walk"
)

// Runner executes scan sessions against one or more targets.
type Runner struct {
	Options  config.Options
	Validate *validate.Client
}

// NewRunner builds a Runner. validateClient may be nil; it is only used
// when opts.Validator.Enabled is true.
func NewRunner(opts config.Options, validateClient *validate.Client) *Runner {
	return &Runner{Options: opts, Validate: validateClient}
}

// Run scans every target and returns the completed session. Targets
// that fail to resolve or walk record an error on their ScanResult
// rather than aborting the whole session (spec.md §7's InputError
// handling: fatal for the affected target, not the session).
func (r *Runner) Run(ctx context.Context, targets []string) model.ScanSession {
	started := time.Now()
	session := model.NewScanSession(targets, r.Options.Validator.Enabled, started)

	for _, target := range targets {
		session.Results = append(session.Results, r.scanTarget(ctx, target))
		if ctx.Err() != nil {
			break
		}
	}

	session.CompletedAt = time.Now()
	return session
}

func (r *Runner) scanTarget(ctx context.Context, target string) model.ScanResult {
	result := model.ScanResult{Target: target, StartedAt: time.Now()}

	root := target
	if isRemoteURL(target) {
		checkout, err := repository.Clone(target)
		if err != nil {
			result.Errors = append(result.Errors, "clone failed: "+err.Error())
			result.CompletedAt = time.Now()
			return result
		}
		defer checkout.Cleanup()
		root = checkout.Path
		result.ResolvedCommit = checkout.ResolvedCommit
	}

	files, walkErrs := walk.Walk(root, walk.Options{})
	result.Errors = append(result.Errors, walkErrs...)

	var providerFilter map[string]bool
	if len(r.Options.Scanner.ProviderFilter) > 0 {
		providerFilter = r.Options.Scanner.ProviderFilter
	}

	var candidates []model.Candidate
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		found := scanner.ScanBuffer(f.Text, f.Path, scanner.ScanOptions{
			ContextLines:   r.Options.Scanner.ContextLines,
			ProviderFilter: providerFilter,
		})
		candidates = append(candidates, found...)
		result.FilesInspected++
	}

	if r.Options.Validator.Enabled && r.Validate != nil && len(candidates) > 0 {
		candidates = r.Validate.ValidateBatch(ctx, candidates)
	}

	result.Candidates = candidates
	result.CompletedAt = time.Now()
	return result
}

func isRemoteURL(target string) bool {
	if strings.HasPrefix(target, "git@") {
		return true
	}
	u, err := url.Parse(target)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "ssh" || u.Scheme == "git")
}
