package repo

import (
	"fmt"
	"strings"

	"github.com/keshon/lit/internal/util"
)

// Status renders the repository state: branches, staged and removed files,
// unstaged modifications, and untracked files.
//
// Policy for "Modifications Not Staged For Commit": a file staged for
// addition but missing from the working tree reports as (deleted); a file
// whose working copy differs from its staged or tracked content reports as
// (modified); a tracked, unremoved file missing from the working tree
// reports as (deleted).
func (r *Repository) Status() (string, error) {
	s, err := r.loadStage()
	if err != nil {
		return "", err
	}
	head, err := r.headCommit()
	if err != nil {
		return "", err
	}

	branches, err := r.Refs.ListBranches()
	if err != nil {
		return "", err
	}
	current, err := r.Refs.CurrentBranch()
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("=== Branches ===\n")
	for _, name := range branches {
		if name == current {
			fmt.Fprintf(&b, "*%s\n", name)
		} else {
			fmt.Fprintf(&b, "%s\n", name)
		}
	}
	b.WriteString("\n")

	b.WriteString("=== Staged Files ===\n")
	for _, name := range util.SortedKeys(s.Addition) {
		fmt.Fprintf(&b, "%s\n", name)
	}
	b.WriteString("\n")

	b.WriteString("=== Removed Files ===\n")
	for _, name := range util.SortedKeys(s.Removal) {
		fmt.Fprintf(&b, "%s\n", name)
	}
	b.WriteString("\n")

	modifications := map[string]string{}
	candidates := head.CloneSnapshot()
	for name, blobID := range s.Addition {
		candidates[name] = blobID
	}
	for _, name := range util.SortedKeys(candidates) {
		switch {
		case s.StagedForRemoval(name):
			// already reported under Removed Files
		case !r.Tree.Exists(name):
			modifications[name] = "deleted"
		default:
			blobID, _, err := r.Tree.BlobIDFor(name)
			if err != nil {
				return "", err
			}
			if blobID != candidates[name] {
				modifications[name] = "modified"
			}
		}
	}
	b.WriteString("=== Modifications Not Staged For Commit ===\n")
	for _, name := range util.SortedKeys(modifications) {
		fmt.Fprintf(&b, "%s (%s)\n", name, modifications[name])
	}
	b.WriteString("\n")

	files, err := r.Tree.ListFiles()
	if err != nil {
		return "", err
	}
	b.WriteString("=== Untracked Files ===\n")
	for _, name := range files {
		if !head.Tracked(name) && !s.StagedForAddition(name) {
			fmt.Fprintf(&b, "%s\n", name)
		}
	}
	b.WriteString("\n")

	r.Tree.FlushCache()
	return b.String(), nil
}
