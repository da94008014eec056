package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/vcs"
	"github.com/arthur-debert/mydot/pkg/vcs/vcstest"
	"github.com/arthur-debert/mydot/pkg/workspace"
)

// testEnv is a sandboxed home directory holding a repository at
// ~/.dotfiles for host box1
type testEnv struct {
	home string
	root string
	ws   *workspace.Workspace
	fake *vcstest.Fake
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "box1"), 0755))

	backend := vcstest.NewBackend()
	fake := vcstest.NewFake(root)
	backend.Repos[root] = fake

	ws, err := workspace.Open(context.Background(), workspace.Options{
		Root:    root,
		Host:    "box1",
		Home:    home,
		FS:      filesystem.NewOS(),
		Backend: backend,
	})
	require.NoError(t, err)

	// forget the config.yaml bootstrap commit
	fake.Messages = nil
	fake.Calls = nil
	return &testEnv{home: home, root: root, ws: ws, fake: fake}
}

// mockWorkspace wires a testify mock into a workspace without bootstrapping
func mockWorkspace(t *testing.T, repo vcs.Repository) *workspace.Workspace {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "box1"), 0755))
	p, err := paths.NewWithHome(root, "box1", home)
	require.NoError(t, err)
	app, err := config.LoadDefaults()
	require.NoError(t, err)
	return &workspace.Workspace{
		Paths:  p,
		FS:     filesystem.NewOS(),
		Repo:   repo,
		Config: config.NewRepoConfig(),
		App:    app,
	}
}

func (e *testEnv) repo(rel string) string {
	return filepath.Join(e.root, "box1", rel)
}

func (e *testEnv) homePath(rel string) string {
	return filepath.Join(e.home, rel)
}

func (e *testEnv) write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (e *testEnv) reconciler(opts Options) *Reconciler {
	return New(e.ws, opts)
}

func readLink(t *testing.T, path string) string {
	t.Helper()
	target, err := os.Readlink(path)
	require.NoError(t, err)
	return target
}

func isSymlink(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return info.Mode()&os.ModeSymlink != 0
}

func notExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return os.IsNotExist(err)
}
