// Package history keeps a git change journal over the storage directory
// using go-git (pure Go, no git binary dependency). Every mutating request
// becomes one commit, which gives a free audit trail and a recovery path for
// the flat-file store.
package history

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	journalName  = "unidrive"
	journalEmail = "unidrive@localhost"
)

// Commit is one entry of the change journal.
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	When    time.Time `json:"when"`
}

// Journal records snapshots of a directory tree as git commits.
type Journal struct {
	dir  string
	repo *gogit.Repository
	mu   sync.Mutex
}

// Open opens the journal at dir, initializing a fresh repository when none
// exists yet.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		// Not a repo yet — initialize.
		repo, err = gogit.PlainInit(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize journal repo: %w", err)
		}
		cfg, err := repo.Config()
		if err != nil {
			return nil, fmt.Errorf("failed to read journal config: %w", err)
		}
		cfg.User.Name = journalName
		cfg.User.Email = journalEmail
		if err := repo.SetConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to write journal config: %w", err)
		}
	}
	return &Journal{dir: dir, repo: repo}, nil
}

// Commit stages every change under the journal directory and records one
// commit. A clean tree is a no-op. go-git operations do not take a context,
// so the request context is not propagated past this point.
func (j *Journal) Commit(_ context.Context, msg string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	w, err := j.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	now := time.Now()
	sig := &object.Signature{Name: journalName, Email: journalEmail, When: now}
	if _, err := w.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Recent returns up to n journal entries, newest first.
func (j *Journal) Recent(_ context.Context, n int) ([]*Commit, error) {
	if n <= 0 || n > 1000 {
		n = 1000
	}

	iter, err := j.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return nil, nil // no commits yet is not an error
	}
	defer iter.Close()

	var commits []*Commit
	for range n {
		c, err := iter.Next()
		if err != nil {
			break
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		commits = append(commits, &Commit{
			Hash:    c.Hash.String(),
			Message: subject,
			When:    c.Author.When,
		})
	}
	return commits, nil
}
