package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/lit/internal/commit"
)

const dateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// shortIDLen is the abbreviation used for parent ids in merge entries.
const shortIDLen = 8

// Log renders the first-parent history of HEAD, most recent first.
func (r *Repository) Log() (string, error) {
	id, err := r.Refs.CurrentCommitID()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	walk := r.Commits.FirstParentChain(id)
	for {
		c, err := walk.Next()
		if err != nil {
			return "", err
		}
		if c == nil {
			break
		}
		writeLogEntry(&b, c)
	}
	return b.String(), nil
}

// GlobalLog renders every commit ever made, enumerated straight from the
// commit store: history may be disconnected across branches, so walking
// parent links from any one tip would miss commits.
func (r *Repository) GlobalLog() (string, error) {
	ids, err := r.Commits.AllIDs()
	if err != nil {
		return "", err
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		c, err := r.Commits.Resolve(id)
		if err != nil {
			return "", err
		}
		writeLogEntry(&b, c)
	}
	return b.String(), nil
}

// Find returns the ids of all commits whose message matches exactly, one per
// line.
func (r *Repository) Find(message string) (string, error) {
	ids, err := r.Commits.AllIDs()
	if err != nil {
		return "", err
	}
	sort.Strings(ids)

	var matches []string
	for _, id := range ids {
		c, err := r.Commits.Resolve(id)
		if err != nil {
			return "", err
		}
		if c.Message == message {
			matches = append(matches, c.ID)
		}
	}
	if len(matches) == 0 {
		return "", ErrNoSuchMessage
	}
	return strings.Join(matches, "\n") + "\n", nil
}

func writeLogEntry(b *strings.Builder, c *commit.Commit) {
	b.WriteString("===\n")
	fmt.Fprintf(b, "commit %s\n", c.ID)
	if c.IsMerge() {
		fmt.Fprintf(b, "Merge: %s %s\n", shortID(c.Parents[0]), shortID(c.Parents[1]))
	}
	fmt.Fprintf(b, "Date: %s\n", c.Timestamp.Format(dateLayout))
	b.WriteString(c.Message + "\n\n")
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
