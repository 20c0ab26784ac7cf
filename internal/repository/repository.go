// Package repository acquires a scan target that names a remote Git
// repository: it clones it to a session-scoped temporary directory and
// resolves the commit the scan ran against.
//
// Grounded on the teacher's go.mod, which already declared
// gopkg.in/src-d/go-git.v4 as a dependency without any package in the
// tree actually importing it — wiring it here turns a previously-dead
// require into an exercised one.
package repository

import (
	"fmt"
	"os"

	git "gopkg.in/src-d/go-git.v4"
)

// Checkout is an acquired local copy of a remote repository. Cleanup
// removes its temporary directory; callers must call it on every code
// path, typically via defer.
type Checkout struct {
	Path           string
	ResolvedCommit string
	cleanup        func() error
}

// Cleanup removes the checkout's temporary directory.
func (c Checkout) Cleanup() error {
	if c.cleanup == nil {
		return nil
	}
	return c.cleanup()
}

// Clone clones url into a fresh temporary directory and resolves HEAD's
// commit hash. The caller owns the returned Checkout and must call
// Cleanup on it, including on error paths it chooses to continue past.
func Clone(url string) (Checkout, error) {
	dir, err := os.MkdirTemp("", "ai-truffle-hog-repo-*")
	if err != nil {
		return Checkout{}, fmt.Errorf("repository: create temp dir: %w", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	repo, err := git.PlainClone(dir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = cleanup()
		return Checkout{}, fmt.Errorf("repository: clone %s: %w", url, err)
	}

	head, err := repo.Head()
	if err != nil {
		_ = cleanup()
		return Checkout{}, fmt.Errorf("repository: resolve HEAD: %w", err)
	}

	return Checkout{
		Path:           dir,
		ResolvedCommit: head.Hash().String(),
		cleanup:        cleanup,
	}, nil
}
