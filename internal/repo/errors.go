package repo

import "errors"

// Operation failures carry the exact single-line descriptions the user sees.
// Every operation validates fully before mutating, so a returned error means
// no persisted state changed.
var (
	ErrRepoExists          = errors.New("A lit version-control system already exists in the current directory.")
	ErrNotRepo             = errors.New("Not in an initialized lit directory.")
	ErrFileNotExist        = errors.New("File does not exist.")
	ErrEmptyMessage        = errors.New("Please enter a commit message.")
	ErrNothingStaged       = errors.New("No changes added to the commit.")
	ErrNothingToRemove     = errors.New("No reason to remove the file.")
	ErrFileNotInCommit     = errors.New("File does not exist in that commit.")
	ErrNoSuchBranch        = errors.New("No such branch exists.")
	ErrSameBranch          = errors.New("No need to checkout the current branch.")
	ErrBranchExists        = errors.New("A branch with that name already exists.")
	ErrBranchNotFound      = errors.New("A branch with that name does not exist.")
	ErrRemoveCurrentBranch = errors.New("Cannot remove the current branch.")
	ErrNoSuchMessage       = errors.New("Found no commit with that message.")
	ErrSelfMerge           = errors.New("Cannot merge a branch with itself.")
	ErrUncommittedChanges  = errors.New("You have uncommitted changes.")
)
