package repo

import (
	"time"

	"github.com/keshon/lit/internal/commit"
	"github.com/keshon/lit/internal/config"
)

// Commit records the staged changes as a new commit on the current branch:
// the parent snapshot plus staged additions, minus staged removals.
func (r *Repository) Commit(message string) (*commit.Commit, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	s, err := r.loadStage()
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return nil, ErrNothingStaged
	}

	head, err := r.headCommit()
	if err != nil {
		return nil, err
	}

	snapshot := head.CloneSnapshot()
	for name, blobID := range s.Addition {
		snapshot[name] = blobID
	}
	for name := range s.Removal {
		delete(snapshot, name)
	}

	author := config.Author(r.FS, r.Config)
	c, err := r.Commits.Create(commit.New(message, author, time.Now().UTC(), snapshot, head.ID))
	if err != nil {
		return nil, err
	}

	if err := r.Refs.AdvanceCurrent(c.ID); err != nil {
		return nil, err
	}
	if err := r.clearStage(); err != nil {
		return nil, err
	}
	return c, nil
}
