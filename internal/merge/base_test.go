package merge_test

import (
	"testing"
	"time"

	"github.com/keshon/lit/internal/commit"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/merge"
	"github.com/keshon/lit/internal/object"
)

func makeGraph(t *testing.T) *commit.Graph {
	t.Helper()
	s, err := object.NewStore(fs.NewMemoryFS(), "commits")
	if err != nil {
		t.Fatal(err)
	}
	return commit.NewGraph(s)
}

func create(t *testing.T, g *commit.Graph, msg string, parents ...string) *commit.Commit {
	t.Helper()
	c, err := g.Create(commit.New(msg, "test", time.Now().UTC(), nil, parents...))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return c
}

func TestFindBaseDiamond(t *testing.T) {
	g := makeGraph(t)

	root, err := g.Create(commit.Initial("initial commit"))
	if err != nil {
		t.Fatal(err)
	}
	split := create(t, g, "split", root.ID)
	left := create(t, g, "left", split.ID)
	right := create(t, g, "right", split.ID)

	base, err := merge.FindBase(g, left.ID, right.ID)
	if err != nil {
		t.Fatalf("FindBase failed: %v", err)
	}
	if base != split.ID {
		t.Errorf("expected split point %s, got %s", split.ID, base)
	}
}

func TestFindBaseAncestorTip(t *testing.T) {
	g := makeGraph(t)

	root, err := g.Create(commit.Initial("initial commit"))
	if err != nil {
		t.Fatal(err)
	}
	older := create(t, g, "older", root.ID)
	newer := create(t, g, "newer", older.ID)

	// one tip strictly behind the other: the base is the older tip itself,
	// in both argument orders
	for _, pair := range [][2]string{{newer.ID, older.ID}, {older.ID, newer.ID}} {
		base, err := merge.FindBase(g, pair[0], pair[1])
		if err != nil {
			t.Fatalf("FindBase failed: %v", err)
		}
		if base != older.ID {
			t.Errorf("expected %s, got %s", older.ID, base)
		}
	}
}

func TestFindBaseSameTip(t *testing.T) {
	g := makeGraph(t)

	root, err := g.Create(commit.Initial("initial commit"))
	if err != nil {
		t.Fatal(err)
	}
	tip := create(t, g, "tip", root.ID)

	base, err := merge.FindBase(g, tip.ID, tip.ID)
	if err != nil {
		t.Fatalf("FindBase failed: %v", err)
	}
	if base != tip.ID {
		t.Errorf("expected the tip itself, got %s", base)
	}
}

func TestFindBaseAfterCrissCrossIsDeterministic(t *testing.T) {
	g := makeGraph(t)

	root, err := g.Create(commit.Initial("initial commit"))
	if err != nil {
		t.Fatal(err)
	}
	a := create(t, g, "a", root.ID)
	b := create(t, g, "b", root.ID)
	// criss-cross: each side merged the other once already
	ma := create(t, g, "merge b into a", a.ID, b.ID)
	mb := create(t, g, "merge a into b", b.ID, a.ID)
	tipA := create(t, g, "work on a", ma.ID)
	tipB := create(t, g, "work on b", mb.ID)

	// both a and b are common ancestors at equal summed distance; the result
	// must come from the candidate set and never vary between runs
	first, err := merge.FindBase(g, tipA.ID, tipB.ID)
	if err != nil {
		t.Fatalf("FindBase failed: %v", err)
	}
	if first != a.ID && first != b.ID {
		t.Fatalf("base %s is not one of the tied candidates", first)
	}
	for i := 0; i < 5; i++ {
		again, err := merge.FindBase(g, tipA.ID, tipB.ID)
		if err != nil {
			t.Fatalf("FindBase failed: %v", err)
		}
		if again != first {
			t.Errorf("run %d: base changed from %s to %s", i, first, again)
		}
	}
}
