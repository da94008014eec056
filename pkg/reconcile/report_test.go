package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/types"
	"github.com/arthur-debert/mydot/pkg/vcs/vcstest"
)

func TestStatus_UpstreamUnavailable(t *testing.T) {
	e := newTestEnv(t)
	e.write(t, e.repo(".vimrc"), "vim")
	e.fake.HeadHash = "abc123"
	e.fake.Untracked = []string{"box1/.vimrc"}

	report, err := e.reconciler(Options{}).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, e.root, report.Root)
	assert.Equal(t, "box1", report.Host)
	assert.Equal(t, "main", report.Branch)
	assert.Equal(t, "origin/main", report.Upstream)
	assert.False(t, report.UpstreamAvailable)
	assert.Equal(t, "abc123", report.Head)
	assert.Equal(t, []string{"box1/.vimrc"}, report.Untracked)
	assert.False(t, report.Clean())
	require.Len(t, report.Files, 1)
	assert.Equal(t, types.StatusLinkMissing, report.Files[0].Status)
}

func TestStatus_AheadOfUpstream(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Refs["main"] = true
	e.fake.Refs["origin/main"] = true
	e.fake.Ahead = 2
	e.fake.Behind = 1
	e.fake.AheadCommits = []types.Commit{
		{Hash: "b", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Summary: "mydot: adding box1/.zshrc"},
		{Hash: "a", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Summary: "mydot: adding box1/.vimrc"},
	}

	report, err := e.reconciler(Options{}).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, report.UpstreamAvailable)
	assert.Equal(t, 2, report.Ahead)
	assert.Equal(t, 1, report.Behind)
	assert.Len(t, report.CommitsAhead, 2)
	assert.True(t, report.Clean())
}

func TestStatus_VCSFailure(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Errors["IsDirty"] = errors.New(errors.ErrVCS, "broken")

	_, err := e.reconciler(Options{}).Status(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name      string
		dirty     bool
		untracked []string
		staged    []string
		want      bool
	}{
		{"clean", false, nil, nil, true},
		{"dirty", true, nil, nil, false},
		{"untracked", false, []string{"box1/.vimrc"}, nil, false},
		{"staged", false, nil, []string{"box1/.vimrc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &vcstest.Mock{}
			repo.On("IsDirty").Return(tt.dirty, nil)
			repo.On("UntrackedFiles").Return(tt.untracked, nil).Maybe()
			repo.On("DiffAgainstHead").Return(tt.staged, nil).Maybe()

			clean, err := New(mockWorkspace(t, repo), Options{}).Clean(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, clean)
			repo.AssertExpectations(t)
		})
	}
}

func TestClean_ShortCircuits(t *testing.T) {
	repo := &vcstest.Mock{}
	repo.On("IsDirty").Return(true, nil)

	clean, err := New(mockWorkspace(t, repo), Options{}).Clean(context.Background())
	require.NoError(t, err)
	assert.False(t, clean)
	repo.AssertNotCalled(t, "UntrackedFiles")
	repo.AssertNotCalled(t, "DiffAgainstHead")
}

func TestClean_Error(t *testing.T) {
	repo := &vcstest.Mock{}
	repo.On("IsDirty").Return(false, nil)
	repo.On("UntrackedFiles").Return(nil, errors.New(errors.ErrVCS, "boom"))

	_, err := New(mockWorkspace(t, repo), Options{}).Clean(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
	repo.AssertNotCalled(t, "DiffAgainstHead")
}

func TestList_OtherHost(t *testing.T) {
	e := newTestEnv(t)
	e.write(t, e.root+"/box2/.vimrc", "vim")

	files, err := e.reconciler(Options{}).List("box2")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".vimrc", files[0].RelativePath)

	files, err = e.reconciler(Options{}).List("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
