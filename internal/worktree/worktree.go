package worktree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/object"
)

// ErrUntrackedFile means a checkout/reset/merge would silently overwrite a
// working-tree file the current commit does not track.
var ErrUntrackedFile = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")

// Tree materializes commit snapshots into the working directory and reads
// working files back as blobs.
type Tree struct {
	fsys  fs.FS
	cfg   *config.RepoConfig
	blobs *object.Store
	cache *hashCache
}

func NewTree(fsys fs.FS, cfg *config.RepoConfig, blobs *object.Store) *Tree {
	return &Tree{
		fsys:  fsys,
		cfg:   cfg,
		blobs: blobs,
		cache: loadHashCache(fsys, cfg.CachePath()),
	}
}

// ListFiles returns the plain files in the working directory, sorted.
// Subdirectories (including the metadata root) are not tracked.
func (t *Tree) ListFiles() ([]string, error) {
	entries, err := t.fsys.ReadDir(t.cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read working dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a working file is present.
func (t *Tree) Exists(name string) bool {
	return t.fsys.Exists(t.cfg.WorkPath(name))
}

// ReadFile reads a working file's bytes.
func (t *Tree) ReadFile(name string) ([]byte, error) {
	return t.fsys.ReadFile(t.cfg.WorkPath(name))
}

// Remove deletes a working file. Missing files are not an error: staging a
// removal after a manual delete must still succeed.
func (t *Tree) Remove(name string) error {
	if !t.Exists(name) {
		return nil
	}
	return t.fsys.Remove(t.cfg.WorkPath(name))
}

// WriteBlob overwrites a working file with the content of blobID.
func (t *Tree) WriteBlob(name, blobID string) error {
	data, err := t.blobs.Get(blobID)
	if err != nil {
		return fmt.Errorf("failed to load blob for %q: %w", name, err)
	}
	if err := t.fsys.WriteFile(t.cfg.WorkPath(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", name, err)
	}
	return nil
}

// CheckUntracked fails with ErrUntrackedFile if any working file is
// untracked by current but tracked by target. It completes the full scan
// before the caller performs any mutation.
func (t *Tree) CheckUntracked(current, target map[string]string) error {
	files, err := t.ListFiles()
	if err != nil {
		return err
	}
	for _, name := range files {
		_, inCurrent := current[name]
		_, inTarget := target[name]
		if !inCurrent && inTarget {
			return ErrUntrackedFile
		}
	}
	return nil
}

// Sync brings the working directory from the current snapshot to the target
// snapshot: every file tracked by current but absent from target is deleted,
// then every target file is written unconditionally. Callers run
// CheckUntracked first.
func (t *Tree) Sync(current, target map[string]string) error {
	for name := range current {
		if _, ok := target[name]; !ok {
			if err := t.Remove(name); err != nil {
				return fmt.Errorf("failed to remove %q: %w", name, err)
			}
		}
	}
	for name, blobID := range target {
		if err := t.WriteBlob(name, blobID); err != nil {
			return err
		}
	}
	return nil
}

// BlobIDFor reads a working file and returns its blob id and bytes. The id
// comes from the fingerprint cache when the content is unchanged, avoiding a
// full content-hash recomputation.
func (t *Tree) BlobIDFor(name string) (string, []byte, error) {
	data, err := t.ReadFile(name)
	if err != nil {
		return "", nil, err
	}
	if id, ok := t.cache.lookup(name, data); ok {
		return id, data, nil
	}
	id, err := object.ComputeID(data)
	if err != nil {
		return "", nil, err
	}
	t.cache.record(name, data, id)
	return id, data, nil
}

// FlushCache persists the fingerprint cache. Failures are ignored: the cache
// is a pure accelerator and is rebuilt on demand.
func (t *Tree) FlushCache() {
	t.cache.save(t.fsys, t.cfg.CachePath())
}
