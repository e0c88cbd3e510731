package commit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/lit/internal/object"
)

// ErrCommitNotFound is returned when an id (or id prefix) resolves to no
// stored commit.
var ErrCommitNotFound = errors.New("No commit with that id exists.")

// minPrefixLen is the shortest accepted abbreviated commit id.
const minPrefixLen = 4

// Graph reads and writes the commit DAG through an append-only, id-keyed
// object store. All traversal is by id lookup, never by in-memory pointers.
type Graph struct {
	store *object.Store
}

func NewGraph(store *object.Store) *Graph {
	return &Graph{store: store}
}

// Create serializes c, stores it, and stamps its content id. The record must
// not be mutated afterwards.
func (g *Graph) Create(c *Commit) (*Commit, error) {
	data, err := c.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize commit: %w", err)
	}
	id, err := g.store.Put(data)
	if err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}
	c.ID = id
	return c, nil
}

// Resolve loads a commit by exact id, or by a unique abbreviated prefix of
// at least four characters.
func (g *Graph) Resolve(id string) (*Commit, error) {
	if id == "" {
		return nil, ErrCommitNotFound
	}
	if g.store.Has(id) {
		return g.load(id)
	}
	if len(id) < minPrefixLen {
		return nil, ErrCommitNotFound
	}

	ids, err := g.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to scan commits: %w", err)
	}
	match := ""
	for _, full := range ids {
		if strings.HasPrefix(full, id) {
			if match != "" {
				return nil, ErrCommitNotFound // ambiguous prefix
			}
			match = full
		}
	}
	if match == "" {
		return nil, ErrCommitNotFound
	}
	return g.load(match)
}

func (g *Graph) load(id string) (*Commit, error) {
	data, err := g.store.Get(id)
	if err != nil {
		return nil, ErrCommitNotFound
	}
	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode commit %q: %w", id, err)
	}
	c.ID = id
	return &c, nil
}

// AllIDs enumerates every commit id in the store, without walking parent
// links. History may be disconnected across branches, so enumeration is the
// only complete view.
func (g *Graph) AllIDs() ([]string, error) {
	return g.store.List()
}

// Walk is a lazy first-parent traversal. Each call to FirstParentChain
// returns a fresh, restartable walk.
type Walk struct {
	g    *Graph
	next string
	seen map[string]bool
}

// FirstParentChain starts a walk at id following only first-parent links.
func (g *Graph) FirstParentChain(id string) *Walk {
	return &Walk{g: g, next: id, seen: map[string]bool{}}
}

// Next returns the next commit in the chain, or (nil, nil) once exhausted.
// The seen guard bounds the walk even on corrupted parent links.
func (w *Walk) Next() (*Commit, error) {
	if w.next == "" || w.seen[w.next] {
		return nil, nil
	}
	c, err := w.g.Resolve(w.next)
	if err != nil {
		return nil, err
	}
	w.seen[c.ID] = true
	w.next = c.FirstParent()
	return c, nil
}

// Ancestors returns the set of ids reachable from id over both parent links,
// id included. Implemented as a worklist walk with a visited set so deep
// histories cannot overflow the stack.
func (g *Graph) Ancestors(id string) (map[string]bool, error) {
	visited := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == "" || visited[cur] {
			continue
		}
		c, err := g.Resolve(cur)
		if err != nil {
			return nil, err
		}
		visited[c.ID] = true
		for _, p := range c.Parents {
			if p != "" && !visited[p] {
				stack = append(stack, p)
			}
		}
	}
	return visited, nil
}

// Distances returns the shortest distance (in parent edges) from id to each
// reachable ancestor, computed breadth-first over both parent links.
func (g *Graph) Distances(id string) (map[string]int, error) {
	dist := map[string]int{}
	queue := []string{id}
	dist[id] = 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		c, err := g.Resolve(cur)
		if err != nil {
			return nil, err
		}
		// the id in dist may be a prefix the caller passed; key by full id
		if cur != c.ID {
			dist[c.ID] = dist[cur]
			delete(dist, cur)
		}
		for _, p := range c.Parents {
			if p == "" {
				continue
			}
			if _, ok := dist[p]; !ok {
				dist[p] = dist[c.ID] + 1
				queue = append(queue, p)
			}
		}
	}
	return dist, nil
}
