// Package gitlog tracks data file changes in a git repository.
//
// The data directory is kept as a plain git repo (pure Go via go-git, no git
// binary needed) and every successful mutating admin request is committed with
// a "METHOD /path" message. This gives the flat-file catalog a history without
// pretending to be a transactional store.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	committerName  = "tvsource"
	committerEmail = "tvsource@localhost"
)

// Manager commits catalog data changes to the git repo at the data directory.
type Manager struct {
	dir  string
	repo *gogit.Repository
	mu   sync.Mutex
}

// Open opens the git repository at dir, initializing one if absent.
func Open(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		// Not a repo yet — initialize.
		repo, err = gogit.PlainInit(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git repo: %w", err)
		}
		cfg, err := repo.Config()
		if err != nil {
			return nil, fmt.Errorf("failed to read git config: %w", err)
		}
		cfg.User.Name = committerName
		cfg.User.Email = committerEmail
		if err := repo.SetConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to write git config: %w", err)
		}
	}
	return &Manager{dir: dir, repo: repo}, nil
}

// Dir returns the repository working directory.
func (m *Manager) Dir() string {
	return m.dir
}

// CommitDataChanges stages the JSON data files and commits them with msg.
// A clean worktree is a no-op.
func (m *Manager) CommitDataChanges(ctx context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.AddGlob("*.json"); err != nil && !errors.Is(err, gogit.ErrGlobNoMatches) {
		return fmt.Errorf("failed to stage data files: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	// config.yaml and other non-JSON files sit untracked in the data dir, so
	// the worktree is rarely clean; only staged changes warrant a commit.
	staged := false
	for _, s := range status {
		if s.Staging != gogit.Unmodified && s.Staging != gogit.Untracked {
			staged = true
			break
		}
	}
	if !staged {
		return nil
	}

	sig := &object.Signature{Name: committerName, Email: committerEmail, When: time.Now()}
	if _, err := w.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return fmt.Errorf("failed to commit data changes: %w", err)
	}
	return nil
}
