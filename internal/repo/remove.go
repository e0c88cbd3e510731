package repo

// Remove unstages a pending addition for name and, when HEAD tracks the
// file, stages it for removal and deletes it from the working tree. When
// neither applies there is nothing to remove.
func (r *Repository) Remove(name string) error {
	s, err := r.loadStage()
	if err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}

	staged := s.StagedForAddition(name)
	tracked := head.Tracked(name)
	if !staged && !tracked {
		return ErrNothingToRemove
	}

	if staged {
		s.UnstageAddition(name)
	}
	if tracked {
		s.StageRemoval(name)
		if err := r.Tree.Remove(name); err != nil {
			return err
		}
	}
	return r.saveStage(s)
}
