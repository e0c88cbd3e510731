package refs_test

import (
	"testing"

	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/refs"
)

func makeStore(t *testing.T) *refs.Store {
	t.Helper()
	m := fs.NewMemoryFS()
	if err := m.MkdirAll("repo/branches", 0o755); err != nil {
		t.Fatal(err)
	}
	return refs.NewStore(m, "repo/branches", "repo/HEAD")
}

func TestBranchSetGet(t *testing.T) {
	s := makeStore(t)

	if err := s.SetBranch("master", "commit1"); err != nil {
		t.Fatalf("SetBranch failed: %v", err)
	}
	id, err := s.GetBranch("master")
	if err != nil {
		t.Fatalf("GetBranch failed: %v", err)
	}
	if id != "commit1" {
		t.Errorf("expected commit1 got %s", id)
	}
	if !s.BranchExists("master") {
		t.Error("expected master to exist")
	}
	if s.BranchExists("nope") {
		t.Error("expected nope to not exist")
	}
}

func TestListBranchesSorted(t *testing.T) {
	s := makeStore(t)
	s.SetBranch("zeta", "c1")
	s.SetBranch("alpha", "c1")

	names, err := s.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("unexpected branch list: %v", names)
	}
}

func TestHeadThroughBranch(t *testing.T) {
	s := makeStore(t)
	s.SetBranch("master", "commit1")
	if err := s.SetHead("master"); err != nil {
		t.Fatalf("SetHead failed: %v", err)
	}

	branch, err := s.CurrentBranch()
	if err != nil || branch != "master" {
		t.Fatalf("expected master, got %q, %v", branch, err)
	}
	id, err := s.CurrentCommitID()
	if err != nil || id != "commit1" {
		t.Fatalf("expected commit1, got %q, %v", id, err)
	}

	// advancing rewrites the branch file, not HEAD
	if err := s.AdvanceCurrent("commit2"); err != nil {
		t.Fatalf("AdvanceCurrent failed: %v", err)
	}
	if id, _ := s.GetBranch("master"); id != "commit2" {
		t.Errorf("expected branch at commit2, got %s", id)
	}
	if branch, _ := s.CurrentBranch(); branch != "master" {
		t.Errorf("HEAD must still reference master, got %q", branch)
	}
}

func TestDetachedHead(t *testing.T) {
	s := makeStore(t)
	if err := s.DetachHead("commit9"); err != nil {
		t.Fatalf("DetachHead failed: %v", err)
	}

	branch, err := s.CurrentBranch()
	if err != nil || branch != "" {
		t.Fatalf("expected detached (empty branch), got %q, %v", branch, err)
	}
	id, err := s.CurrentCommitID()
	if err != nil || id != "commit9" {
		t.Fatalf("expected commit9, got %q, %v", id, err)
	}

	// advancing in detached mode rewrites HEAD itself
	if err := s.AdvanceCurrent("commit10"); err != nil {
		t.Fatalf("AdvanceCurrent failed: %v", err)
	}
	if id, _ := s.CurrentCommitID(); id != "commit10" {
		t.Errorf("expected commit10, got %s", id)
	}
}

func TestDeleteBranch(t *testing.T) {
	s := makeStore(t)
	s.SetBranch("feature", "c1")
	if err := s.DeleteBranch("feature"); err != nil {
		t.Fatalf("DeleteBranch failed: %v", err)
	}
	if s.BranchExists("feature") {
		t.Error("expected feature to be gone")
	}
}
