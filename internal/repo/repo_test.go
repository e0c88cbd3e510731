package repo_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/keshon/lit/internal/commit"
	"github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

// makeRepo initializes a repository under "work" on an in-memory filesystem.
func makeRepo(t *testing.T) (*repo.Repository, fs.FS) {
	t.Helper()
	m := fs.NewMemoryFS()
	r, err := repo.Init(m, "work")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return r, m
}

func writeWorkFile(t *testing.T, fsys fs.FS, name, content string) {
	t.Helper()
	if err := fsys.WriteFile("work/"+name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readWorkFile(t *testing.T, fsys fs.FS, name string) string {
	t.Helper()
	data, err := fsys.ReadFile("work/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func addAndCommit(t *testing.T, r *repo.Repository, message string, files map[string]string, fsys fs.FS) *commit.Commit {
	t.Helper()
	for name, content := range files {
		writeWorkFile(t, fsys, name, content)
		if err := r.Add(name); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	c, err := r.Commit(message)
	if err != nil {
		t.Fatalf("Commit %q: %v", message, err)
	}
	return c
}

func TestInitCreatesSharedInitialCommit(t *testing.T) {
	r1, _ := makeRepo(t)
	m2 := fs.NewMemoryFS()
	r2, err := repo.Init(m2, "elsewhere")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	id1, err := r1.Refs.CurrentCommitID()
	if err != nil {
		t.Fatal(err)
	}
	id2, err := r2.Refs.CurrentCommitID()
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("initial commits differ: %s vs %s", id1, id2)
	}

	branch, err := r1.Refs.CurrentBranch()
	if err != nil {
		t.Fatal(err)
	}
	if branch != config.DefaultBranch {
		t.Errorf("expected HEAD on %s, got %s", config.DefaultBranch, branch)
	}
}

func TestInitRefusesExistingRepo(t *testing.T) {
	_, m := makeRepo(t)
	if _, err := repo.Init(m, "work"); !errors.Is(err, repo.ErrRepoExists) {
		t.Errorf("expected ErrRepoExists, got %v", err)
	}
}

func TestOpenRequiresRepo(t *testing.T) {
	m := fs.NewMemoryFS()
	if _, err := repo.Open(m, "work"); !errors.Is(err, repo.ErrNotRepo) {
		t.Errorf("expected ErrNotRepo, got %v", err)
	}
}

// basic cycle: two commits, log order, distinct ids
func TestCommitAndLogCycle(t *testing.T) {
	r, m := makeRepo(t)

	c1 := addAndCommit(t, r, "c1", map[string]string{"f.txt": "one"}, m)
	c2 := addAndCommit(t, r, "c2", map[string]string{"f.txt": "two"}, m)

	if c1.ID == c2.ID {
		t.Error("commits with different snapshots share an id")
	}
	if c2.FirstParent() != c1.ID {
		t.Errorf("c2 parent = %s, want %s", c2.FirstParent(), c1.ID)
	}

	out, err := r.Log()
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	i2 := strings.Index(out, "c2")
	i1 := strings.Index(out, "c1")
	if i2 == -1 || i1 == -1 || i2 > i1 {
		t.Errorf("log must list c2 before c1:\n%s", out)
	}
	if !strings.Contains(out, "initial commit") {
		t.Errorf("log must end at the initial commit:\n%s", out)
	}
}

func TestAddMissingFile(t *testing.T) {
	r, _ := makeRepo(t)
	if err := r.Add("ghost.txt"); !errors.Is(err, repo.ErrFileNotExist) {
		t.Errorf("expected ErrFileNotExist, got %v", err)
	}
}

func TestAddUnchangedContentUnstages(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "c1", map[string]string{"f.txt": "one"}, m)

	// modify, stage, then revert and re-add: nothing should stay staged
	writeWorkFile(t, m, "f.txt", "two")
	if err := r.Add("f.txt"); err != nil {
		t.Fatal(err)
	}
	writeWorkFile(t, m, "f.txt", "one")
	if err := r.Add("f.txt"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Commit("nothing"); !errors.Is(err, repo.ErrNothingStaged) {
		t.Errorf("expected ErrNothingStaged, got %v", err)
	}
}

func TestCommitValidation(t *testing.T) {
	r, m := makeRepo(t)
	writeWorkFile(t, m, "f.txt", "one")
	if err := r.Add("f.txt"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Commit(""); !errors.Is(err, repo.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	// the empty-message failure must leave the stage intact
	if _, err := r.Commit("c1"); err != nil {
		t.Errorf("commit after failed attempt: %v", err)
	}
}

// rm on a tracked file deletes it and the next commit stops tracking it
func TestRemoveTrackedFile(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "c1", map[string]string{"f.txt": "one", "keep.txt": "k"}, m)

	if err := r.Remove("f.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if r.Tree.Exists("f.txt") {
		t.Error("removed file still in the working tree")
	}

	c, err := r.Commit("drop f")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if c.Tracked("f.txt") {
		t.Error("commit still tracks the removed file")
	}
	if !c.Tracked("keep.txt") {
		t.Error("commit lost an unrelated file")
	}
}

func TestRemoveStagedOnlyFileKeepsWorkingCopy(t *testing.T) {
	r, m := makeRepo(t)
	writeWorkFile(t, m, "new.txt", "n")
	if err := r.Add("new.txt"); err != nil {
		t.Fatal(err)
	}

	if err := r.Remove("new.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !r.Tree.Exists("new.txt") {
		t.Error("rm must not delete a file that is only staged, never tracked")
	}
	if _, err := r.Commit("empty"); !errors.Is(err, repo.ErrNothingStaged) {
		t.Errorf("expected ErrNothingStaged, got %v", err)
	}
}

func TestRemoveUntrackedFile(t *testing.T) {
	r, m := makeRepo(t)
	writeWorkFile(t, m, "stray.txt", "s")
	if err := r.Remove("stray.txt"); !errors.Is(err, repo.ErrNothingToRemove) {
		t.Errorf("expected ErrNothingToRemove, got %v", err)
	}
}

func TestCheckoutFileRestoresHeadVersion(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "c1", map[string]string{"f.txt": "committed"}, m)

	writeWorkFile(t, m, "f.txt", "scribbled")
	if err := r.CheckoutFile("f.txt"); err != nil {
		t.Fatalf("CheckoutFile failed: %v", err)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "committed" {
		t.Errorf("expected committed content, got %q", got)
	}

	if err := r.CheckoutFile("ghost.txt"); !errors.Is(err, repo.ErrFileNotInCommit) {
		t.Errorf("expected ErrFileNotInCommit, got %v", err)
	}
}

func TestCheckoutFileAtOldCommitByPrefix(t *testing.T) {
	r, m := makeRepo(t)
	c1 := addAndCommit(t, r, "c1", map[string]string{"f.txt": "old"}, m)
	addAndCommit(t, r, "c2", map[string]string{"f.txt": "new"}, m)

	// all ids share the multihash header prefix, so abbreviate past it
	if err := r.CheckoutFileAt(c1.ID[:16], "f.txt"); err != nil {
		t.Fatalf("CheckoutFileAt failed: %v", err)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "old" {
		t.Errorf("expected old content, got %q", got)
	}

	if err := r.CheckoutFileAt("bafynope", "f.txt"); !errors.Is(err, commit.ErrCommitNotFound) {
		t.Errorf("expected ErrCommitNotFound, got %v", err)
	}
}

func TestCheckoutBranchSwitchesTreeAndHead(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"f.txt": "base"}, m)

	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "on master", map[string]string{"f.txt": "master", "only.txt": "m"}, m)

	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatalf("CheckoutBranch failed: %v", err)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "base" {
		t.Errorf("expected base content, got %q", got)
	}
	if r.Tree.Exists("only.txt") {
		t.Error("file tracked only on master survived the switch")
	}
	branch, _ := r.Refs.CurrentBranch()
	if branch != "feature" {
		t.Errorf("HEAD on %s, want feature", branch)
	}
}

func TestCheckoutBranchErrors(t *testing.T) {
	r, _ := makeRepo(t)
	if err := r.CheckoutBranch("nope"); !errors.Is(err, repo.ErrNoSuchBranch) {
		t.Errorf("expected ErrNoSuchBranch, got %v", err)
	}
	if err := r.CheckoutBranch(config.DefaultBranch); !errors.Is(err, repo.ErrSameBranch) {
		t.Errorf("expected ErrSameBranch, got %v", err)
	}
}

func TestCheckoutBranchUntrackedFileInTheWay(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"a.txt": "a"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "adds f", map[string]string{"f.txt": "master"}, m)
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}

	// untracked f.txt on feature collides with master's tracked f.txt
	writeWorkFile(t, m, "f.txt", "untracked")
	err := r.CheckoutBranch(config.DefaultBranch)
	if err == nil || !strings.Contains(err.Error(), "untracked file in the way") {
		t.Fatalf("expected untracked-file error, got %v", err)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "untracked" {
		t.Errorf("failed checkout must not touch the working tree, got %q", got)
	}
}

func TestBranchDoesNotMoveOnOtherBranchCommits(t *testing.T) {
	r, m := makeRepo(t)
	base := addAndCommit(t, r, "base", map[string]string{"f.txt": "base"}, m)

	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "master moves", map[string]string{"f.txt": "moved"}, m)

	featureTip, err := r.Refs.GetBranch("feature")
	if err != nil {
		t.Fatal(err)
	}
	if featureTip != base.ID {
		t.Errorf("feature moved to %s, want %s", featureTip, base.ID)
	}
}

func TestBranchAndRemoveBranchErrors(t *testing.T) {
	r, _ := makeRepo(t)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	if err := r.Branch("feature"); !errors.Is(err, repo.ErrBranchExists) {
		t.Errorf("expected ErrBranchExists, got %v", err)
	}
	if err := r.RemoveBranch("nope"); !errors.Is(err, repo.ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
	if err := r.RemoveBranch(config.DefaultBranch); !errors.Is(err, repo.ErrRemoveCurrentBranch) {
		t.Errorf("expected ErrRemoveCurrentBranch, got %v", err)
	}
	if err := r.RemoveBranch("feature"); err != nil {
		t.Errorf("RemoveBranch failed: %v", err)
	}
	if r.Refs.BranchExists("feature") {
		t.Error("branch still exists after removal")
	}
}

func TestResetMovesBranchAndTree(t *testing.T) {
	r, m := makeRepo(t)
	c1 := addAndCommit(t, r, "c1", map[string]string{"f.txt": "one"}, m)
	addAndCommit(t, r, "c2", map[string]string{"f.txt": "two", "extra.txt": "x"}, m)

	if err := r.Reset(c1.ID); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "one" {
		t.Errorf("expected reverted content, got %q", got)
	}
	if r.Tree.Exists("extra.txt") {
		t.Error("file from the abandoned commit survived the reset")
	}
	tip, _ := r.Refs.CurrentCommitID()
	if tip != c1.ID {
		t.Errorf("branch points at %s, want %s", tip, c1.ID)
	}
}

func TestFindByExactMessage(t *testing.T) {
	r, m := makeRepo(t)
	c1 := addAndCommit(t, r, "needle", map[string]string{"a.txt": "1"}, m)
	addAndCommit(t, r, "other", map[string]string{"a.txt": "2"}, m)
	c3 := addAndCommit(t, r, "needle", map[string]string{"a.txt": "3"}, m)

	out, err := r.Find("needle")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !strings.Contains(out, c1.ID) || !strings.Contains(out, c3.ID) {
		t.Errorf("Find missed a match:\n%s", out)
	}

	if _, err := r.Find("needl"); !errors.Is(err, repo.ErrNoSuchMessage) {
		t.Errorf("substring must not match, got %v", err)
	}
}

func TestGlobalLogSeesAllBranches(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "shared", map[string]string{"a.txt": "1"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "master only", map[string]string{"a.txt": "2"}, m)
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "feature only", map[string]string{"a.txt": "3"}, m)

	out, err := r.GlobalLog()
	if err != nil {
		t.Fatalf("GlobalLog failed: %v", err)
	}
	for _, msg := range []string{"shared", "master only", "feature only", "initial commit"} {
		if !strings.Contains(out, msg) {
			t.Errorf("global log missing %q:\n%s", msg, out)
		}
	}
}

func TestStatusSectionsAndPolicy(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"tracked.txt": "t", "gone.txt": "g"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}

	writeWorkFile(t, m, "staged.txt", "s")
	if err := r.Add("staged.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.Remove("gone.txt"); err != nil {
		t.Fatal(err)
	}
	writeWorkFile(t, m, "tracked.txt", "altered")
	writeWorkFile(t, m, "stray.txt", "u")

	out, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	for _, want := range []string{
		"=== Branches ===\nfeature\n*master\n",
		"=== Staged Files ===\nstaged.txt\n",
		"=== Removed Files ===\ngone.txt\n",
		"tracked.txt (modified)\n",
		"=== Untracked Files ===\nstray.txt\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func TestStatusStagedFileDeletedFromTree(t *testing.T) {
	r, m := makeRepo(t)
	writeWorkFile(t, m, "f.txt", "one")
	if err := r.Add("f.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.FS.Remove("work/f.txt"); err != nil {
		t.Fatal(err)
	}

	out, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !strings.Contains(out, "f.txt (deleted)\n") {
		t.Errorf("expected f.txt reported as deleted:\n%s", out)
	}
}

func TestMergeConflict(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"f.txt": "a"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}

	addAndCommit(t, r, "master edit", map[string]string{"f.txt": "c"}, m)
	masterTip, _ := r.Refs.GetBranch(config.DefaultBranch)

	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "feature edit", map[string]string{"f.txt": "b"}, m)
	featureTip, _ := r.Refs.GetBranch("feature")

	if err := r.CheckoutBranch(config.DefaultBranch); err != nil {
		t.Fatal(err)
	}
	report, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if report != "Encountered a merge conflict." {
		t.Errorf("unexpected report %q", report)
	}

	got := readWorkFile(t, m, "f.txt")
	want := "<<<<<<< HEAD\nc\n=======\nb\n>>>>>>> feature\n"
	if got != want {
		t.Errorf("conflict content:\n%q\nwant\n%q", got, want)
	}

	tipID, _ := r.Refs.CurrentCommitID()
	tip, err := r.Commits.Resolve(tipID)
	if err != nil {
		t.Fatal(err)
	}
	if !tip.IsMerge() {
		t.Fatal("merge commit must have two parents")
	}
	if tip.Parents[0] != masterTip || tip.Parents[1] != featureTip {
		t.Errorf("merge parents %v, want [%s %s]", tip.Parents, masterTip, featureTip)
	}
	if tip.Message != "Merged feature into master." {
		t.Errorf("merge message %q", tip.Message)
	}
}

func TestMergeCleanTakesBothSides(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"shared.txt": "s"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}

	addAndCommit(t, r, "master adds", map[string]string{"m.txt": "m"}, m)
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "feature adds", map[string]string{"f.txt": "f"}, m)
	if err := r.CheckoutBranch(config.DefaultBranch); err != nil {
		t.Fatal(err)
	}

	report, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if report != "" {
		t.Errorf("expected a silent clean merge, got %q", report)
	}
	for _, name := range []string{"shared.txt", "m.txt", "f.txt"} {
		if !r.Tree.Exists(name) {
			t.Errorf("merged tree missing %s", name)
		}
	}
}

func TestMergeFastForward(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"f.txt": "base"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}
	tip := addAndCommit(t, r, "ahead", map[string]string{"f.txt": "ahead"}, m)
	if err := r.CheckoutBranch(config.DefaultBranch); err != nil {
		t.Fatal(err)
	}

	report, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if report != "Current branch fast-forwarded." {
		t.Errorf("unexpected report %q", report)
	}
	// no new commit: the branch pointer simply moved to the given tip
	masterTip, _ := r.Refs.GetBranch(config.DefaultBranch)
	if masterTip != tip.ID {
		t.Errorf("master at %s, want %s", masterTip, tip.ID)
	}
	if got := readWorkFile(t, m, "f.txt"); got != "ahead" {
		t.Errorf("tree not synced, got %q", got)
	}
}

func TestMergeAncestorIsNoOp(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"f.txt": "base"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	tip := addAndCommit(t, r, "ahead", map[string]string{"f.txt": "ahead"}, m)

	report, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if report != "Given branch is an ancestor of the current branch." {
		t.Errorf("unexpected report %q", report)
	}
	masterTip, _ := r.Refs.GetBranch(config.DefaultBranch)
	if masterTip != tip.ID {
		t.Error("ancestor merge must not move the current branch")
	}
}

func TestMergeValidation(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"f.txt": "base"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}

	writeWorkFile(t, m, "f.txt", "dirty")
	if err := r.Add("f.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Merge("feature"); !errors.Is(err, repo.ErrUncommittedChanges) {
		t.Errorf("expected ErrUncommittedChanges, got %v", err)
	}
	if err := r.CheckoutFile("f.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("f.txt"); err != nil { // unstages the reverted file
		t.Fatal(err)
	}

	if _, err := r.Merge("nope"); !errors.Is(err, repo.ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
	if _, err := r.Merge(config.DefaultBranch); !errors.Is(err, repo.ErrSelfMerge) {
		t.Errorf("expected ErrSelfMerge, got %v", err)
	}
}

func TestLogShowsMergeLine(t *testing.T) {
	r, m := makeRepo(t)
	addAndCommit(t, r, "base", map[string]string{"s.txt": "s"}, m)
	if err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "master adds", map[string]string{"m.txt": "m"}, m)
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatal(err)
	}
	addAndCommit(t, r, "feature adds", map[string]string{"f.txt": "f"}, m)
	if err := r.CheckoutBranch(config.DefaultBranch); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Merge("feature"); err != nil {
		t.Fatal(err)
	}

	out, err := r.Log()
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if !strings.Contains(out, "Merge: ") {
		t.Errorf("log entry for a merge commit must carry a Merge: line:\n%s", out)
	}
	// first-parent walk: the feature-only commit is not on the chain
	if strings.Contains(out, "feature adds") {
		t.Errorf("first-parent log leaked a second-parent commit:\n%s", out)
	}
}
