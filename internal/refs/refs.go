package refs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/lit/internal/fs"
)

const refPrefix = "ref: branches/"

// Store manages branch pointer files and the HEAD indirection. A branch file
// holds the commit id it points to; HEAD holds either "ref: branches/<name>"
// or, detached, a raw commit id.
type Store struct {
	fsys        fs.FS
	branchesDir string
	headPath    string
}

func NewStore(fsys fs.FS, branchesDir, headPath string) *Store {
	return &Store{fsys: fsys, branchesDir: branchesDir, headPath: headPath}
}

func (s *Store) branchPath(name string) string {
	return filepath.Join(s.branchesDir, name)
}

// SetBranch writes (or rewrites) the branch pointer.
func (s *Store) SetBranch(name, commitID string) error {
	if err := s.fsys.WriteFile(s.branchPath(name), []byte(commitID), 0o644); err != nil {
		return fmt.Errorf("failed to write branch %q: %w", name, err)
	}
	return nil
}

// GetBranch returns the commit id a branch points to.
func (s *Store) GetBranch(name string) (string, error) {
	data, err := s.fsys.ReadFile(s.branchPath(name))
	if err != nil {
		return "", fmt.Errorf("failed to read branch %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BranchExists checks for a branch pointer file.
func (s *Store) BranchExists(name string) bool {
	return s.fsys.Exists(s.branchPath(name))
}

// DeleteBranch removes the branch pointer file.
func (s *Store) DeleteBranch(name string) error {
	if err := s.fsys.Remove(s.branchPath(name)); err != nil {
		return fmt.Errorf("failed to delete branch %q: %w", name, err)
	}
	return nil
}

// ListBranches returns all branch names sorted.
func (s *Store) ListBranches() ([]string, error) {
	entries, err := s.fsys.ReadDir(s.branchesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read branches dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SetHead points HEAD at a branch.
func (s *Store) SetHead(branch string) error {
	if err := s.fsys.WriteFile(s.headPath, []byte(refPrefix+branch), 0o644); err != nil {
		return fmt.Errorf("failed to write HEAD: %w", err)
	}
	return nil
}

// DetachHead points HEAD directly at a commit id.
func (s *Store) DetachHead(commitID string) error {
	if err := s.fsys.WriteFile(s.headPath, []byte(commitID), 0o644); err != nil {
		return fmt.Errorf("failed to write HEAD: %w", err)
	}
	return nil
}

// CurrentBranch returns the branch HEAD references, or "" when detached.
func (s *Store) CurrentBranch() (string, error) {
	data, err := s.fsys.ReadFile(s.headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if strings.HasPrefix(content, refPrefix) {
		return strings.TrimPrefix(content, refPrefix), nil
	}
	return "", nil
}

// CurrentCommitID dereferences HEAD, through the branch indirection when not
// detached, to a commit id.
func (s *Store) CurrentCommitID() (string, error) {
	data, err := s.fsys.ReadFile(s.headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if strings.HasPrefix(content, refPrefix) {
		return s.GetBranch(strings.TrimPrefix(content, refPrefix))
	}
	return content, nil
}

// AdvanceCurrent rewrites whatever HEAD resolves through: the referenced
// branch pointer in normal mode, HEAD itself when detached.
func (s *Store) AdvanceCurrent(commitID string) error {
	branch, err := s.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == "" {
		return s.DetachHead(commitID)
	}
	return s.SetBranch(branch, commitID)
}
