package repo

import (
	"fmt"

	"github.com/keshon/lit/internal/commit"
	"github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/object"
	"github.com/keshon/lit/internal/refs"
	"github.com/keshon/lit/internal/stage"
	"github.com/keshon/lit/internal/worktree"
)

// Repository is the explicit context every operation runs against: the
// layout, the two object stores, the commit graph, references, and the
// working tree. There is no process-wide repository state.
type Repository struct {
	Config  *config.RepoConfig
	FS      fs.FS
	Blobs   *object.Store
	Commits *commit.Graph
	Refs    *refs.Store
	Tree    *worktree.Tree
}

// Init creates a new repository at workDir: the metadata layout, the shared
// initial commit, the master branch pointing at it, HEAD, and an empty
// staging area.
func Init(fsys fs.FS, workDir string) (*Repository, error) {
	cfg := config.NewRepoConfig(workDir)
	if fsys.Exists(cfg.HeadPath()) {
		return nil, ErrRepoExists
	}

	for _, dir := range []string{cfg.Root, cfg.CommitsPath(), cfg.BlobsPath(), cfg.BranchesPath()} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", dir, err)
		}
	}

	r, err := open(fsys, cfg)
	if err != nil {
		return nil, err
	}

	initial, err := r.Commits.Create(commit.Initial(config.InitialMessage))
	if err != nil {
		return nil, err
	}
	if err := r.Refs.SetBranch(config.DefaultBranch, initial.ID); err != nil {
		return nil, err
	}
	if err := stage.New().Save(fsys, cfg.StagingPath()); err != nil {
		return nil, err
	}
	// HEAD last: its presence is what marks the repository as initialized
	if err := r.Refs.SetHead(config.DefaultBranch); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens an existing repository at workDir.
func Open(fsys fs.FS, workDir string) (*Repository, error) {
	cfg := config.NewRepoConfig(workDir)
	if !fsys.Exists(cfg.HeadPath()) {
		return nil, ErrNotRepo
	}
	return open(fsys, cfg)
}

func open(fsys fs.FS, cfg *config.RepoConfig) (*Repository, error) {
	blobs, err := object.NewStore(fsys, cfg.BlobsPath())
	if err != nil {
		return nil, err
	}
	commits, err := object.NewStore(fsys, cfg.CommitsPath())
	if err != nil {
		return nil, err
	}

	r := &Repository{
		Config:  cfg,
		FS:      fsys,
		Blobs:   blobs,
		Commits: commit.NewGraph(commits),
		Refs:    refs.NewStore(fsys, cfg.BranchesPath(), cfg.HeadPath()),
	}
	r.Tree = worktree.NewTree(fsys, cfg, blobs)
	return r, nil
}

// headCommit resolves HEAD to its commit.
func (r *Repository) headCommit() (*commit.Commit, error) {
	id, err := r.Refs.CurrentCommitID()
	if err != nil {
		return nil, err
	}
	return r.Commits.Resolve(id)
}

func (r *Repository) loadStage() (*stage.StagingArea, error) {
	return stage.Load(r.FS, r.Config.StagingPath())
}

func (r *Repository) saveStage(s *stage.StagingArea) error {
	return s.Save(r.FS, r.Config.StagingPath())
}

// clearStage resets the persisted staging area to empty.
func (r *Repository) clearStage() error {
	return stage.New().Save(r.FS, r.Config.StagingPath())
}
