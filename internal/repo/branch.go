package repo

// Branch creates a new branch pointing at the current HEAD commit. HEAD does
// not move.
func (r *Repository) Branch(name string) error {
	if r.Refs.BranchExists(name) {
		return ErrBranchExists
	}
	id, err := r.Refs.CurrentCommitID()
	if err != nil {
		return err
	}
	return r.Refs.SetBranch(name, id)
}

// RemoveBranch deletes a branch pointer. The checked-out branch cannot be
// removed. Commits reachable only from the deleted branch stay in the store.
func (r *Repository) RemoveBranch(name string) error {
	if !r.Refs.BranchExists(name) {
		return ErrBranchNotFound
	}
	current, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return ErrRemoveCurrentBranch
	}
	return r.Refs.DeleteBranch(name)
}
