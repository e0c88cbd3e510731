package merge

import (
	"bytes"
	"fmt"

	"github.com/keshon/lit/internal/object"
	"github.com/keshon/lit/internal/util"
)

// Result of a three-way reconciliation.
type Result struct {
	Snapshot  map[string]string // filename -> blob id of the merged state
	Conflicts []string          // filenames that needed conflict markers
}

// Reconcile performs the per-file three-way merge of base, ours and theirs
// snapshots. Conflicting files get replacement content with inline markers,
// stored as new blobs; givenBranch labels the theirs side of the markers.
func Reconcile(blobs *object.Store, base, ours, theirs map[string]string, givenBranch string) (*Result, error) {
	res := &Result{Snapshot: map[string]string{}}

	union := map[string]bool{}
	for name := range base {
		union[name] = true
	}
	for name := range ours {
		union[name] = true
	}
	for name := range theirs {
		union[name] = true
	}

	for _, name := range util.SortedKeys(union) {
		b := base[name] // "" means absent
		o := ours[name]
		t := theirs[name]

		switch {
		// same on both sides: unchanged everywhere, changed identically,
		// or deleted by both
		case o == t:
			if o != "" {
				res.Snapshot[name] = o
			}

		// ours matches base: theirs decides (modify, add, or delete)
		case b == o:
			if t != "" {
				res.Snapshot[name] = t
			}

		// theirs matches base: ours decides
		case b == t:
			if o != "" {
				res.Snapshot[name] = o
			}

		// both diverged from base: conflict
		default:
			id, err := conflictBlob(blobs, o, t, givenBranch)
			if err != nil {
				return nil, fmt.Errorf("failed to build conflict content for %q: %w", name, err)
			}
			res.Snapshot[name] = id
			res.Conflicts = append(res.Conflicts, name)
		}
	}

	return res, nil
}

// conflictBlob synthesizes marker content exposing both divergent versions
// and stores it as a blob. A deleted side contributes empty content.
func conflictBlob(blobs *object.Store, oursID, theirsID, givenBranch string) (string, error) {
	oursData, err := sideContent(blobs, oursID)
	if err != nil {
		return "", err
	}
	theirsData, err := sideContent(blobs, theirsID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(withTrailingNewline(oursData))
	buf.WriteString("=======\n")
	buf.Write(withTrailingNewline(theirsData))
	buf.WriteString(">>>>>>> " + givenBranch + "\n")

	return blobs.Put(buf.Bytes())
}

func sideContent(blobs *object.Store, id string) ([]byte, error) {
	if id == "" {
		return nil, nil
	}
	return blobs.Get(id)
}

// withTrailingNewline keeps the closing marker on its own line.
func withTrailingNewline(data []byte) []byte {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return data
	}
	return append(append([]byte(nil), data...), '\n')
}
