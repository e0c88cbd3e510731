package stage

import (
	"fmt"

	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/util"
)

// StagingArea is the mutable pending-change set awaiting the next commit:
// files staged for addition (with their target blob id) and files staged for
// removal. A filename is never present in both at once.
type StagingArea struct {
	Addition map[string]string `json:"addition"` // filename -> blob id
	Removal  map[string]bool   `json:"removal"`  // filenames
}

func New() *StagingArea {
	return &StagingArea{
		Addition: map[string]string{},
		Removal:  map[string]bool{},
	}
}

// Load reads the staging area from path. A missing file is an error: the
// staging file is created at init and always rewritten, never deleted.
func Load(fsys fs.FS, path string) (*StagingArea, error) {
	var s StagingArea
	if err := util.ReadJSON(fsys, path, &s); err != nil {
		return nil, fmt.Errorf("failed to read staging area: %w", err)
	}
	if s.Addition == nil {
		s.Addition = map[string]string{}
	}
	if s.Removal == nil {
		s.Removal = map[string]bool{}
	}
	return &s, nil
}

// Save persists the staging area to path.
func (s *StagingArea) Save(fsys fs.FS, path string) error {
	if err := util.WriteJSON(fsys, path, s); err != nil {
		return fmt.Errorf("failed to write staging area: %w", err)
	}
	return nil
}

// StageAddition records name for addition with blobID as the target content.
// When the new content matches what HEAD already tracks (headBlobID), the
// name is dropped from both sets instead, so unchanged files never recommit.
func (s *StagingArea) StageAddition(name, blobID, headBlobID string) {
	if blobID == headBlobID {
		delete(s.Addition, name)
		delete(s.Removal, name)
		return
	}
	s.Addition[name] = blobID
	delete(s.Removal, name)
}

// StageRemoval records name for removal and clears any pending addition.
func (s *StagingArea) StageRemoval(name string) {
	s.Removal[name] = true
	delete(s.Addition, name)
}

// UnstageAddition drops a pending addition for name.
func (s *StagingArea) UnstageAddition(name string) {
	delete(s.Addition, name)
}

// StagedForAddition reports whether name has a pending addition.
func (s *StagingArea) StagedForAddition(name string) bool {
	_, ok := s.Addition[name]
	return ok
}

// StagedForRemoval reports whether name has a pending removal.
func (s *StagingArea) StagedForRemoval(name string) bool {
	return s.Removal[name]
}

// IsEmpty reports whether nothing is staged.
func (s *StagingArea) IsEmpty() bool {
	return len(s.Addition) == 0 && len(s.Removal) == 0
}

// Clear resets both sets to empty.
func (s *StagingArea) Clear() {
	s.Addition = map[string]string{}
	s.Removal = map[string]bool{}
}
