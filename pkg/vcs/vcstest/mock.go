package vcstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/mydot/pkg/types"
	"github.com/arthur-debert/mydot/pkg/vcs"
)

// Mock is a testify mock implementation of vcs.Repository
type Mock struct {
	mock.Mock
	RootDir string
}

var _ vcs.Repository = (*Mock)(nil)

func (m *Mock) Root() string { return m.RootDir }

func (m *Mock) IsDirty(ctx context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *Mock) UntrackedFiles(ctx context.Context) ([]string, error) {
	args := m.Called()
	return stringsArg(args, 0), args.Error(1)
}

func (m *Mock) ChangedFiles(ctx context.Context) ([]string, error) {
	args := m.Called()
	return stringsArg(args, 0), args.Error(1)
}

func (m *Mock) DiffAgainstHead(ctx context.Context) ([]string, error) {
	args := m.Called()
	return stringsArg(args, 0), args.Error(1)
}

func (m *Mock) Stage(ctx context.Context, paths ...string) error {
	args := m.Called(paths)
	return args.Error(0)
}

func (m *Mock) Commit(ctx context.Context, message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *Mock) Remove(ctx context.Context, paths []string, fromWorkingTree bool) error {
	args := m.Called(paths, fromWorkingTree)
	return args.Error(0)
}

func (m *Mock) CommitsAhead(ctx context.Context, pair types.BranchPair) (int, error) {
	args := m.Called(pair)
	return args.Int(0), args.Error(1)
}

func (m *Mock) CommitsBehind(ctx context.Context, pair types.BranchPair) (int, error) {
	args := m.Called(pair)
	return args.Int(0), args.Error(1)
}

func (m *Mock) CommitsBetween(ctx context.Context, from, to string) ([]types.Commit, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Commit), args.Error(1)
}

func (m *Mock) RefExists(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ref)
	return args.Bool(0), args.Error(1)
}

func (m *Mock) Remotes(ctx context.Context) ([]types.Remote, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Remote), args.Error(1)
}

func (m *Mock) AddRemote(ctx context.Context, name, url string) error {
	return m.Called(name, url).Error(0)
}

func (m *Mock) Fetch(ctx context.Context, remote string) error {
	return m.Called(remote).Error(0)
}

func (m *Mock) Push(ctx context.Context, remote, branch string) error {
	return m.Called(remote, branch).Error(0)
}

func (m *Mock) Pull(ctx context.Context, remote, branch string) error {
	return m.Called(remote, branch).Error(0)
}

func (m *Mock) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	args := m.Called(remote)
	return stringsArg(args, 0), args.Error(1)
}

func (m *Mock) CheckoutTracking(ctx context.Context, remote, branch string) error {
	return m.Called(remote, branch).Error(0)
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *Mock) Head(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func stringsArg(args mock.Arguments, i int) []string {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]string)
}
