package repo

import "github.com/keshon/lit/internal/commit"

// CheckoutFile restores a file from the HEAD commit into the working tree.
func (r *Repository) CheckoutFile(name string) error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	return r.checkoutFileFrom(head, name)
}

// CheckoutFileAt restores a file from the given commit (full id or unique
// prefix) into the working tree.
func (r *Repository) CheckoutFileAt(commitID, name string) error {
	c, err := r.Commits.Resolve(commitID)
	if err != nil {
		return err
	}
	return r.checkoutFileFrom(c, name)
}

func (r *Repository) checkoutFileFrom(c *commit.Commit, name string) error {
	if !c.Tracked(name) {
		return ErrFileNotInCommit
	}
	return r.Tree.WriteBlob(name, c.BlobID(name))
}

// CheckoutBranch switches the working tree and HEAD to another branch. The
// untracked-file safety check completes before any mutation.
func (r *Repository) CheckoutBranch(branch string) error {
	if !r.Refs.BranchExists(branch) {
		return ErrNoSuchBranch
	}
	current, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == current {
		return ErrSameBranch
	}

	head, err := r.headCommit()
	if err != nil {
		return err
	}
	targetID, err := r.Refs.GetBranch(branch)
	if err != nil {
		return err
	}
	target, err := r.Commits.Resolve(targetID)
	if err != nil {
		return err
	}

	if err := r.Tree.CheckUntracked(head.Snapshot, target.Snapshot); err != nil {
		return err
	}
	if err := r.Tree.Sync(head.Snapshot, target.Snapshot); err != nil {
		return err
	}
	if err := r.Refs.SetHead(branch); err != nil {
		return err
	}
	return r.clearStage()
}
