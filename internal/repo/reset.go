package repo

// Reset moves the current branch (or detached HEAD) to the given commit and
// synchronizes the working tree to its snapshot, with the same safety check
// as a branch checkout.
func (r *Repository) Reset(commitID string) error {
	target, err := r.Commits.Resolve(commitID)
	if err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}

	if err := r.Tree.CheckUntracked(head.Snapshot, target.Snapshot); err != nil {
		return err
	}
	if err := r.Tree.Sync(head.Snapshot, target.Snapshot); err != nil {
		return err
	}
	if err := r.Refs.AdvanceCurrent(target.ID); err != nil {
		return err
	}
	return r.clearStage()
}
