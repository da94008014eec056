package vcstest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/errors"
)

func TestFake_StageCommitRemove(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	f := NewFake(root)
	f.Untracked = []string{"box1/.vimrc"}

	require.NoError(t, f.Stage(ctx, "box1/.vimrc"))
	assert.Empty(t, f.Untracked)
	assert.Equal(t, []string{"box1/.vimrc"}, f.Staged)

	require.NoError(t, f.Commit(ctx, "mydot: adding .vimrc"))
	assert.True(t, f.Tracked["box1/.vimrc"])
	assert.Empty(t, f.Staged)
	assert.Equal(t, []string{"mydot: adding .vimrc"}, f.Messages)

	path := filepath.Join(root, "box1", ".vimrc")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, f.Remove(ctx, []string{"box1/.vimrc"}, true))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, f.Tracked["box1/.vimrc"])

	require.NoError(t, f.Commit(ctx, "mydot: removed .vimrc"))
	assert.False(t, f.Tracked["box1/.vimrc"], "a committed removal stays untracked")

	assert.Equal(t, []string{"Stage", "Commit", "Remove", "Commit"}, f.Calls)
}

func TestFake_StageAfterRemoveTracksAgain(t *testing.T) {
	ctx := context.Background()
	f := NewFake(t.TempDir())
	f.Tracked["box1/.bashrc"] = true

	require.NoError(t, f.Remove(ctx, []string{"box1/.bashrc"}, false))
	require.NoError(t, f.Stage(ctx, "box1/.bashrc"))
	require.NoError(t, f.Commit(ctx, "mydot: adding box1/.bashrc"))
	assert.True(t, f.Tracked["box1/.bashrc"])
}

func TestFake_InjectedError(t *testing.T) {
	f := NewFake(t.TempDir())
	f.Errors["Commit"] = errors.New(errors.ErrVCS, "boom")

	err := f.Commit(context.Background(), "msg")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
	assert.Empty(t, f.Messages)
}

func TestBackend(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	path := filepath.Join(t.TempDir(), "dots")

	_, err := b.Open(ctx, path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRepository))

	b.Seed = func(f *Fake) { f.RemoteBranchOf["origin"] = []string{"main", "dev"} }
	repo, err := b.Init(ctx, path, "trunk")
	require.NoError(t, err)

	branch, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)

	branches, err := repo.RemoteBranches(ctx, "origin")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "main"}, branches)

	opened, err := b.Open(ctx, path)
	require.NoError(t, err)
	assert.Same(t, repo, opened)
}
