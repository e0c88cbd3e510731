package commit

import (
	"encoding/json"
	"time"
)

// Commit is an immutable snapshot of tracked files plus metadata and up to
// two parent links. The ID is the content id of the serialized record, so it
// is never part of the serialization itself.
type Commit struct {
	ID        string            `json:"-"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Author    string            `json:"author"`
	Parents   []string          `json:"parents,omitempty"` // first parent first, at most two
	Snapshot  map[string]string `json:"snapshot"`          // filename -> blob id
}

// New builds an unsaved commit record. The id is stamped by Graph.Create.
func New(message, author string, ts time.Time, snapshot map[string]string, parents ...string) *Commit {
	if snapshot == nil {
		snapshot = map[string]string{}
	}
	return &Commit{
		Message:   message,
		Timestamp: ts,
		Author:    author,
		Parents:   parents,
		Snapshot:  snapshot,
	}
}

// Initial returns the canonical root commit: no parents, empty snapshot,
// epoch timestamp, fixed message and author. Every repository derives the
// same id for it, so all histories share one root by construction.
func Initial(message string) *Commit {
	return New(message, "", time.Unix(0, 0).UTC(), map[string]string{})
}

// Marshal serializes the commit deterministically (JSON object keys and the
// snapshot map are emitted in sorted order).
func (c *Commit) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Tracked reports whether name is tracked by this commit.
func (c *Commit) Tracked(name string) bool {
	_, ok := c.Snapshot[name]
	return ok
}

// BlobID returns the blob id tracked for name, or "" when untracked.
func (c *Commit) BlobID(name string) string {
	return c.Snapshot[name]
}

// FirstParent returns the first parent id, or "" for the initial commit.
func (c *Commit) FirstParent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// IsMerge reports whether the commit has two parents.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) == 2
}

// CloneSnapshot returns a mutable copy of the snapshot map.
func (c *Commit) CloneSnapshot() map[string]string {
	out := make(map[string]string, len(c.Snapshot))
	for k, v := range c.Snapshot {
		out[k] = v
	}
	return out
}
