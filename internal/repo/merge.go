package repo

import (
	"fmt"
	"time"

	"github.com/keshon/lit/internal/commit"
	"github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/merge"
)

// Merge reports returned on success. An empty report means a clean,
// unremarkable merge commit.
const (
	reportFastForward = "Current branch fast-forwarded."
	reportAncestor    = "Given branch is an ancestor of the current branch."
	reportConflict    = "Encountered a merge conflict."
)

// Merge folds the given branch into the current one: fast-forward when
// history is linear, otherwise a three-way merge commit with both tips as
// parents. Per-file conflicts are recorded with inline markers and do not
// block the merge commit.
func (r *Repository) Merge(given string) (string, error) {
	s, err := r.loadStage()
	if err != nil {
		return "", err
	}
	if !s.IsEmpty() {
		return "", ErrUncommittedChanges
	}
	if !r.Refs.BranchExists(given) {
		return "", ErrBranchNotFound
	}
	current, err := r.Refs.CurrentBranch()
	if err != nil {
		return "", err
	}
	if given == current {
		return "", ErrSelfMerge
	}

	currentTip, err := r.headCommit()
	if err != nil {
		return "", err
	}
	givenID, err := r.Refs.GetBranch(given)
	if err != nil {
		return "", err
	}
	givenTip, err := r.Commits.Resolve(givenID)
	if err != nil {
		return "", err
	}

	baseID, err := merge.FindBase(r.Commits, currentTip.ID, givenTip.ID)
	if err != nil {
		return "", err
	}
	if baseID == givenTip.ID {
		return reportAncestor, nil
	}
	base, err := r.Commits.Resolve(baseID)
	if err != nil {
		return "", err
	}

	// safety check over every file the merge could touch
	union := map[string]string{}
	for _, snap := range []map[string]string{base.Snapshot, currentTip.Snapshot, givenTip.Snapshot} {
		for name, blobID := range snap {
			union[name] = blobID
		}
	}
	if err := r.Tree.CheckUntracked(currentTip.Snapshot, union); err != nil {
		return "", err
	}

	if baseID == currentTip.ID {
		// linear history: checkout the given tip and advance the pointer
		if err := r.Tree.Sync(currentTip.Snapshot, givenTip.Snapshot); err != nil {
			return "", err
		}
		if err := r.Refs.AdvanceCurrent(givenTip.ID); err != nil {
			return "", err
		}
		if err := r.clearStage(); err != nil {
			return "", err
		}
		return reportFastForward, nil
	}

	res, err := merge.Reconcile(r.Blobs, base.Snapshot, currentTip.Snapshot, givenTip.Snapshot, given)
	if err != nil {
		return "", err
	}

	if err := r.Tree.Sync(currentTip.Snapshot, res.Snapshot); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Merged %s into %s.", given, current)
	author := config.Author(r.FS, r.Config)
	c, err := r.Commits.Create(commit.New(message, author, time.Now().UTC(), res.Snapshot, currentTip.ID, givenTip.ID))
	if err != nil {
		return "", err
	}
	if err := r.Refs.AdvanceCurrent(c.ID); err != nil {
		return "", err
	}
	if err := r.clearStage(); err != nil {
		return "", err
	}

	if len(res.Conflicts) > 0 {
		return reportConflict, nil
	}
	return "", nil
}
