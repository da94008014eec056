// Package vcs defines the version-control capabilities mydot consumes and
// implements them by shelling out to the git executable.
//
// Every path crossing the interface is slash-separated and relative to the
// repository root.
package vcs

import (
	"context"

	"github.com/arthur-debert/mydot/pkg/types"
)

// Repository is the version-control surface used by the reconciler and the
// status report.
type Repository interface {
	// Root returns the work tree root
	Root() string

	// IsDirty reports uncommitted changes to tracked files, staged or not
	IsDirty(ctx context.Context) (bool, error)
	// UntrackedFiles lists files not tracked and not ignored
	UntrackedFiles(ctx context.Context) ([]string, error)
	// ChangedFiles lists tracked files that differ between work tree and index
	ChangedFiles(ctx context.Context) ([]string, error)
	// DiffAgainstHead lists files that differ between index and HEAD
	DiffAgainstHead(ctx context.Context) ([]string, error)

	Stage(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	// Remove drops paths from the index, and from the work tree when
	// fromWorkingTree is set
	Remove(ctx context.Context, paths []string, fromWorkingTree bool) error

	CommitsAhead(ctx context.Context, pair types.BranchPair) (int, error)
	CommitsBehind(ctx context.Context, pair types.BranchPair) (int, error)
	// CommitsBetween lists commits reachable from to but not from from,
	// newest first
	CommitsBetween(ctx context.Context, from, to string) ([]types.Commit, error)
	RefExists(ctx context.Context, ref string) (bool, error)

	Remotes(ctx context.Context) ([]types.Remote, error)
	AddRemote(ctx context.Context, name, url string) error
	Fetch(ctx context.Context, remote string) error
	Push(ctx context.Context, remote, branch string) error
	Pull(ctx context.Context, remote, branch string) error
	RemoteBranches(ctx context.Context, remote string) ([]string, error)
	CheckoutTracking(ctx context.Context, remote, branch string) error

	CurrentBranch(ctx context.Context) (string, error)
	// Head returns the current commit hash, or "" on an unborn branch
	Head(ctx context.Context) (string, error)
}

// Backend opens and creates repositories
type Backend interface {
	Open(ctx context.Context, path string) (Repository, error)
	Init(ctx context.Context, path, branch string) (Repository, error)
}
