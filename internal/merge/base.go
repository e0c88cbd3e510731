package merge

import (
	"fmt"

	"github.com/keshon/lit/internal/commit"
)

// FindBase locates the merge base of two tips: the common ancestor with the
// smallest summed distance from both, computed by a breadth-first walk over
// both parent links from each tip.
//
// When several common ancestors tie on summed distance, the winner is the
// one reached first by a synchronized level-by-level expansion alternating
// between the two tips (a level of A, a level of B, the next level of A,
// ...). Parents are enqueued first-parent-first, so the choice is
// deterministic. This rule is this engine's own; it is not a general
// lowest-common-ancestor over arbitrary merge histories.
func FindBase(g *commit.Graph, aID, bID string) (string, error) {
	distA, err := g.Distances(aID)
	if err != nil {
		return "", err
	}
	distB, err := g.Distances(bID)
	if err != nil {
		return "", err
	}

	best := -1
	candidates := map[string]bool{}
	for id, da := range distA {
		db, ok := distB[id]
		if !ok {
			continue
		}
		switch sum := da + db; {
		case best == -1 || sum < best:
			best = sum
			candidates = map[string]bool{id: true}
		case sum == best:
			candidates[id] = true
		}
	}
	if best == -1 {
		// both histories descend from the shared initial commit, so this
		// indicates a corrupted graph
		return "", fmt.Errorf("no common ancestor between %s and %s", aID, bID)
	}
	if len(candidates) == 1 {
		for id := range candidates {
			return id, nil
		}
	}
	return breakTie(g, aID, bID, candidates)
}

// breakTie runs the alternating level-order expansion and returns the first
// candidate encountered.
func breakTie(g *commit.Graph, aID, bID string, candidates map[string]bool) (string, error) {
	levelA := []string{aID}
	levelB := []string{bID}
	seenA := map[string]bool{aID: true}
	seenB := map[string]bool{bID: true}

	expand := func(level []string, seen map[string]bool) ([]string, string, error) {
		var next []string
		for _, id := range level {
			if candidates[id] {
				return nil, id, nil
			}
			c, err := g.Resolve(id)
			if err != nil {
				return nil, "", err
			}
			for _, p := range c.Parents {
				if p != "" && !seen[p] {
					seen[p] = true
					next = append(next, p)
				}
			}
		}
		return next, "", nil
	}

	for len(levelA) > 0 || len(levelB) > 0 {
		var hit string
		var err error
		levelA, hit, err = expand(levelA, seenA)
		if err != nil {
			return "", err
		}
		if hit != "" {
			return hit, nil
		}
		levelB, hit, err = expand(levelB, seenB)
		if err != nil {
			return "", err
		}
		if hit != "" {
			return hit, nil
		}
	}
	return "", fmt.Errorf("tie-break walk exhausted without a candidate")
}
