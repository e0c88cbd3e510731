package config

import "path/filepath"

const (
	RepoDir     = ".lit"
	CommitsDir  = "commits"
	BlobsDir    = "blobs"
	BranchesDir = "branches"
	StagingFile = "staging"
	HeadFile    = "HEAD"
	ConfigFile  = "config"
	CacheFile   = "hashcache.json"
)

const (
	DefaultBranch = "master"
	DefaultAuthor = "anonymous"

	// InitialMessage is the canonical message of the root commit every
	// repository starts from.
	InitialMessage = "initial commit"
)

// RepoConfig resolves the repository layout from a working directory root.
type RepoConfig struct {
	WorkDir string // working tree root
	Root    string // metadata root, <WorkDir>/.lit
}

// NewRepoConfig constructs a RepoConfig rooted at workDir.
// It does not touch the filesystem.
func NewRepoConfig(workDir string) *RepoConfig {
	if workDir == "" {
		workDir = "."
	}
	return &RepoConfig{
		WorkDir: workDir,
		Root:    filepath.Join(workDir, RepoDir),
	}
}

func (c *RepoConfig) CommitsPath() string  { return filepath.Join(c.Root, CommitsDir) }
func (c *RepoConfig) BlobsPath() string    { return filepath.Join(c.Root, BlobsDir) }
func (c *RepoConfig) BranchesPath() string { return filepath.Join(c.Root, BranchesDir) }
func (c *RepoConfig) StagingPath() string  { return filepath.Join(c.Root, StagingFile) }
func (c *RepoConfig) HeadPath() string     { return filepath.Join(c.Root, HeadFile) }
func (c *RepoConfig) ConfigPath() string   { return filepath.Join(c.Root, ConfigFile) }
func (c *RepoConfig) CachePath() string    { return filepath.Join(c.Root, CacheFile) }

// WorkPath joins a tracked filename onto the working tree root.
func (c *RepoConfig) WorkPath(name string) string { return filepath.Join(c.WorkDir, name) }
