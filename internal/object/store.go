package object

import (
	"errors"
	"fmt"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"github.com/keshon/lit/internal/fs"
)

// ErrNotFound is returned when an id has no stored object.
var ErrNotFound = errors.New("object not found")

// Store holds content-addressed immutable objects, one file per id.
// Objects are never rewritten or deleted.
type Store struct {
	fsys fs.FS
	dir  string
}

// NewStore creates a Store over dir, creating it if missing.
func NewStore(fsys fs.FS, dir string) (*Store, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create objects dir %q: %w", dir, err)
	}
	return &Store{fsys: fsys, dir: dir}, nil
}

// ComputeID returns the content id of data: a CIDv1 (raw codec, SHA2-256)
// encoded base32, usable directly as a filename.
func ComputeID(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	c := gocid.NewCidV1(gocid.Raw, mh)
	encoded, err := multibase.Encode(multibase.Base32, c.Bytes())
	if err != nil {
		return "", fmt.Errorf("encode cid: %w", err)
	}
	return encoded, nil
}

func (s *Store) path(id string) string {
	return s.dir + "/" + id
}

// Put stores data under its content id and returns that id.
// Re-storing identical content is a no-op.
func (s *Store) Put(data []byte) (string, error) {
	id, err := ComputeID(data)
	if err != nil {
		return "", err
	}
	if err := s.Ensure(id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Ensure stores data under a precomputed id if missing. Callers that got id
// from the fingerprint cache use this to skip rehashing the content.
func (s *Store) Ensure(id string, data []byte) error {
	if s.fsys.Exists(s.path(id)) {
		return nil
	}
	tmp, tmpPath, err := s.fsys.CreateTempFile(s.dir, ".tmp-obj")
	if err != nil {
		return fmt.Errorf("failed to create temp object: %w", err)
	}
	defer s.fsys.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp object: %w", err)
	}
	if err := s.fsys.Rename(tmpPath, s.path(id)); err != nil {
		return fmt.Errorf("failed to store object %s: %w", id, err)
	}
	return nil
}

// Get reads an object by id.
func (s *Store) Get(id string) ([]byte, error) {
	data, err := s.fsys.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, nil
}

// Has reports whether an object exists.
func (s *Store) Has(id string) bool {
	return s.fsys.Exists(s.path(id))
}

// List enumerates all stored ids, in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects in %q: %w", s.dir, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ids = append(ids, e.Name())
	}
	return ids, nil
}
