package worktree

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/util"
)

// hashCache maps working filenames to a fast content fingerprint and the
// blob id last computed for that content. add/status consult it so unchanged
// files skip the full content hash.
type hashCache struct {
	entries map[string]cacheEntry
	dirty   bool
}

type cacheEntry struct {
	Size int64  `json:"size"`
	Sum  string `json:"sum"` // xxh3-128 of the file bytes
	Blob string `json:"blob"`
}

func fingerprint(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()
	return fmt.Sprintf("%x", sum)
}

func loadHashCache(fsys fs.FS, path string) *hashCache {
	c := &hashCache{entries: map[string]cacheEntry{}}
	// a missing or unreadable cache just means a cold start
	_ = util.ReadJSON(fsys, path, &c.entries)
	if c.entries == nil {
		c.entries = map[string]cacheEntry{}
	}
	return c
}

func (c *hashCache) lookup(name string, data []byte) (string, bool) {
	e, ok := c.entries[name]
	if !ok || e.Size != int64(len(data)) || e.Sum != fingerprint(data) {
		return "", false
	}
	return e.Blob, true
}

func (c *hashCache) record(name string, data []byte, blobID string) {
	c.entries[name] = cacheEntry{
		Size: int64(len(data)),
		Sum:  fingerprint(data),
		Blob: blobID,
	}
	c.dirty = true
}

func (c *hashCache) save(fsys fs.FS, path string) {
	if !c.dirty {
		return
	}
	if err := util.WriteJSON(fsys, path, c.entries); err == nil {
		c.dirty = false
	}
}
