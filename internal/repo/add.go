package repo

// Add stages a working file for the next commit. If the file's content is
// identical to what HEAD tracks, any pending stage entry for it is dropped
// instead, so unchanged files never recommit.
func (r *Repository) Add(name string) error {
	if !r.Tree.Exists(name) {
		return ErrFileNotExist
	}

	s, err := r.loadStage()
	if err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}

	blobID, data, err := r.Tree.BlobIDFor(name)
	if err != nil {
		return err
	}
	if blobID != head.BlobID(name) {
		if err := r.Blobs.Ensure(blobID, data); err != nil {
			return err
		}
	}
	s.StageAddition(name, blobID, head.BlobID(name))

	if err := r.saveStage(s); err != nil {
		return err
	}
	r.Tree.FlushCache()
	return nil
}
