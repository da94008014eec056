// Package vcstest provides test doubles for vcs.Repository: an in-memory
// Fake that records what it was asked to do, and a testify Mock for
// asserting exact call sequences.
package vcstest

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/types"
	"github.com/arthur-debert/mydot/pkg/vcs"
)

// Fake is an in-memory repository. Tests set the exported state fields and
// inspect them after the code under test ran. Errors maps a method name to
// the error it should return.
type Fake struct {
	RootDir string

	Dirty     bool
	Untracked []string
	Changed   []string
	Staged    []string
	Tracked   map[string]bool

	Branch   string
	HeadHash string
	// Refs lists refs for which RefExists is true
	Refs map[string]bool
	// Ahead and Behind are returned for any branch pair
	Ahead        int
	Behind       int
	AheadCommits []types.Commit

	RemoteList     []types.Remote
	RemoteBranchOf map[string][]string

	// Messages records every commit message in order
	Messages []string
	// Calls records every mutating call by method name
	Calls []string

	Errors map[string]error

	// paths removed from the index since the last commit
	removed map[string]bool
}

var _ vcs.Repository = (*Fake)(nil)

// NewFake returns an empty clean repository rooted at root
func NewFake(root string) *Fake {
	return &Fake{
		RootDir:        root,
		Tracked:        map[string]bool{},
		Refs:           map[string]bool{},
		RemoteBranchOf: map[string][]string{},
		Errors:         map[string]error{},
		Branch:         "main",
	}
}

func (f *Fake) fail(method string) error {
	f.Calls = append(f.Calls, method)
	return f.Errors[method]
}

func (f *Fake) Root() string { return f.RootDir }

func (f *Fake) IsDirty(ctx context.Context) (bool, error) {
	return f.Dirty, f.Errors["IsDirty"]
}

func (f *Fake) UntrackedFiles(ctx context.Context) ([]string, error) {
	return f.Untracked, f.Errors["UntrackedFiles"]
}

func (f *Fake) ChangedFiles(ctx context.Context) ([]string, error) {
	return f.Changed, f.Errors["ChangedFiles"]
}

func (f *Fake) DiffAgainstHead(ctx context.Context) ([]string, error) {
	return f.Staged, f.Errors["DiffAgainstHead"]
}

func (f *Fake) Stage(ctx context.Context, paths ...string) error {
	if err := f.fail("Stage"); err != nil {
		return err
	}
	f.Staged = append(f.Staged, paths...)
	for _, p := range paths {
		delete(f.removed, p)
	}
	f.Untracked = without(f.Untracked, paths)
	f.Changed = without(f.Changed, paths)
	return nil
}

func (f *Fake) Commit(ctx context.Context, message string) error {
	if err := f.fail("Commit"); err != nil {
		return err
	}
	for _, p := range f.Staged {
		if f.removed[p] {
			delete(f.Tracked, p)
		} else {
			f.Tracked[p] = true
		}
	}
	f.Staged = nil
	f.removed = nil
	f.Dirty = false
	f.Messages = append(f.Messages, message)
	return nil
}

func (f *Fake) Remove(ctx context.Context, paths []string, fromWorkingTree bool) error {
	if err := f.fail("Remove"); err != nil {
		return err
	}
	for _, p := range paths {
		delete(f.Tracked, p)
		if f.removed == nil {
			f.removed = make(map[string]bool)
		}
		f.removed[p] = true
		f.Staged = append(f.Staged, p)
		if fromWorkingTree {
			if err := os.Remove(filepath.Join(f.RootDir, filepath.FromSlash(p))); err != nil && !os.IsNotExist(err) {
				return errors.Wrap(err, errors.ErrVCS, "fake rm failed")
			}
		}
	}
	return nil
}

func (f *Fake) CommitsAhead(ctx context.Context, pair types.BranchPair) (int, error) {
	return f.Ahead, f.Errors["CommitsAhead"]
}

func (f *Fake) CommitsBehind(ctx context.Context, pair types.BranchPair) (int, error) {
	return f.Behind, f.Errors["CommitsBehind"]
}

func (f *Fake) CommitsBetween(ctx context.Context, from, to string) ([]types.Commit, error) {
	return f.AheadCommits, f.Errors["CommitsBetween"]
}

func (f *Fake) RefExists(ctx context.Context, ref string) (bool, error) {
	return f.Refs[ref], f.Errors["RefExists"]
}

func (f *Fake) Remotes(ctx context.Context) ([]types.Remote, error) {
	return f.RemoteList, f.Errors["Remotes"]
}

func (f *Fake) AddRemote(ctx context.Context, name, url string) error {
	if err := f.fail("AddRemote"); err != nil {
		return err
	}
	f.RemoteList = append(f.RemoteList,
		types.Remote{Name: name, URL: url, Direction: "fetch"},
		types.Remote{Name: name, URL: url, Direction: "push"})
	return nil
}

func (f *Fake) Fetch(ctx context.Context, remote string) error {
	if err := f.fail("Fetch"); err != nil {
		return err
	}
	for _, b := range f.RemoteBranchOf[remote] {
		f.Refs[remote+"/"+b] = true
	}
	return nil
}

func (f *Fake) Push(ctx context.Context, remote, branch string) error {
	return f.fail("Push")
}

func (f *Fake) Pull(ctx context.Context, remote, branch string) error {
	return f.fail("Pull")
}

func (f *Fake) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	branches := append([]string(nil), f.RemoteBranchOf[remote]...)
	sort.Strings(branches)
	return branches, f.Errors["RemoteBranches"]
}

func (f *Fake) CheckoutTracking(ctx context.Context, remote, branch string) error {
	if err := f.fail("CheckoutTracking"); err != nil {
		return err
	}
	f.Branch = branch
	return nil
}

func (f *Fake) CurrentBranch(ctx context.Context) (string, error) {
	return f.Branch, f.Errors["CurrentBranch"]
}

func (f *Fake) Head(ctx context.Context) (string, error) {
	return f.HeadHash, f.Errors["Head"]
}

func without(list, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[r] = true
	}
	var out []string
	for _, s := range list {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}

// Backend serves Fake repositories. Open succeeds for roots registered in
// Repos; Init creates the directory and registers a new Fake.
type Backend struct {
	Repos map[string]*Fake
	// Seed configures a repository created by Init
	Seed func(*Fake)
	// InitErr is returned by Init when set
	InitErr error
}

var _ vcs.Backend = (*Backend)(nil)

// NewBackend returns a backend with no repositories
func NewBackend() *Backend {
	return &Backend{Repos: map[string]*Fake{}}
}

func (b *Backend) Open(ctx context.Context, path string) (vcs.Repository, error) {
	repo, ok := b.Repos[filepath.Clean(path)]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidRepository, "%s is not a git repository", path)
	}
	return repo, nil
}

func (b *Backend) Init(ctx context.Context, path, branch string) (vcs.Repository, error) {
	if b.InitErr != nil {
		return nil, b.InitErr
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	repo := NewFake(filepath.Clean(path))
	if branch != "" {
		repo.Branch = branch
	}
	if b.Seed != nil {
		b.Seed(repo)
	}
	b.Repos[filepath.Clean(path)] = repo
	return repo, nil
}
