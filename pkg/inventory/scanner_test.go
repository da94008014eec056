package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/types"
)

type env struct {
	home  string
	root  string
	paths *paths.Paths
	fs    filesystem.FS
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "box1"), 0755))
	p, err := paths.NewWithHome(root, "box1", home)
	require.NoError(t, err)
	return &env{home: home, root: root, paths: p, fs: filesystem.NewOS()}
}

func (e *env) write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (e *env) repo(rel string) string {
	return filepath.Join(e.root, "box1", rel)
}

func (e *env) homePath(rel string) string {
	return filepath.Join(e.home, rel)
}

func TestScan_ClassifiesEveryStatus(t *testing.T) {
	e := newEnv(t)

	e.write(t, e.repo(".bashrc"), "bash")
	e.write(t, e.repo(".gitconfig"), "git")
	e.write(t, e.repo(".vimrc"), "vim")
	e.write(t, e.repo(".zshrc"), "zsh")

	// .bashrc: in sync
	require.NoError(t, os.Symlink(e.repo(".bashrc"), e.homePath(".bashrc")))
	// .gitconfig: plain file in home
	e.write(t, e.homePath(".gitconfig"), "local")
	// .vimrc: missing
	// .zshrc: link elsewhere
	require.NoError(t, os.Symlink("/somewhere/else", e.homePath(".zshrc")))

	files, err := NewScanner(e.fs, e.paths).Scan()
	require.NoError(t, err)
	require.Len(t, files, 4)

	want := []struct {
		rel    string
		status types.ReconciliationStatus
		target string
	}{
		{".bashrc", types.StatusInSync, e.repo(".bashrc")},
		{".gitconfig", types.StatusTargetNotLink, ""},
		{".vimrc", types.StatusLinkMissing, ""},
		{".zshrc", types.StatusLinkWrongTarget, "/somewhere/else"},
	}
	for i, w := range want {
		assert.Equal(t, w.rel, files[i].RelativePath)
		assert.Equal(t, w.status, files[i].Status, w.rel)
		assert.Equal(t, w.target, files[i].LinkTarget, w.rel)
		assert.Equal(t, e.repo(w.rel), files[i].RepoPath)
		assert.Equal(t, e.homePath(w.rel), files[i].HomePath())
	}
}

func TestScan_NestedAndExcluded(t *testing.T) {
	e := newEnv(t)

	e.write(t, e.repo(".config/nvim/init.lua"), "lua")
	e.write(t, e.repo(".config/git/.git/HEAD"), "ref")
	e.write(t, filepath.Join(e.root, ".git", "HEAD"), "ref")
	e.write(t, filepath.Join(e.root, "config.yaml"), "hosts: []")
	e.write(t, filepath.Join(e.root, "box2", ".vimrc"), "other host")
	require.NoError(t, os.Symlink("/etc/hosts", e.repo(".hosts")))

	files, err := NewScanner(e.fs, e.paths).Scan()
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelativePath)
	}
	assert.Equal(t, []string{filepath.Join(".config", "nvim", "init.lua"), ".hosts"}, rels)
}

func TestScan_LinkTargetComparedVerbatim(t *testing.T) {
	e := newEnv(t)
	e.write(t, e.repo(".vimrc"), "vim")

	// same file, different spelling: byte-exact comparison says wrong target
	require.NoError(t, os.Symlink(e.root+"/box1/./.vimrc", e.homePath(".vimrc")))

	files, err := NewScanner(e.fs, e.paths).Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, types.StatusLinkWrongTarget, files[0].Status)
}

func TestScan_MissingHostDirectory(t *testing.T) {
	e := newEnv(t)

	files, err := NewScanner(e.fs, e.paths).ScanHost("nohost")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_EmptyHostDirectory(t *testing.T) {
	e := newEnv(t)

	files, err := NewScanner(e.fs, e.paths).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_OtherHost(t *testing.T) {
	e := newEnv(t)
	e.write(t, filepath.Join(e.root, "box2", ".vimrc"), "other host")

	files, err := NewScanner(e.fs, e.paths).ScanHost("box2")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(e.root, "box2", ".vimrc"), files[0].RepoPath)
	assert.Equal(t, types.StatusLinkMissing, files[0].Status)
}

func TestScan_InvalidHost(t *testing.T) {
	e := newEnv(t)
	_, err := NewScanner(e.fs, e.paths).ScanHost("../etc")
	assert.Error(t, err)
}

func TestHosts(t *testing.T) {
	e := newEnv(t)
	e.write(t, filepath.Join(e.root, "box2", ".vimrc"), "x")
	e.write(t, filepath.Join(e.root, ".git", "HEAD"), "x")
	e.write(t, filepath.Join(e.root, "config.yaml"), "x")

	hosts, err := NewScanner(e.fs, e.paths).Hosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"box1", "box2"}, hosts)
}

func TestClassify_AncestorIsFile(t *testing.T) {
	e := newEnv(t)
	e.write(t, e.homePath(".config"), "i am a file")

	status, _, err := Classify(e.fs, e.repo(".config/app.conf"), e.homePath(".config/app.conf"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusLinkMissing, status)
}

func TestClassify_DirectoryInHome(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.homePath(".vim"), 0755))

	status, _, err := Classify(e.fs, e.repo(".vim"), e.homePath(".vim"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusTargetNotLink, status)
}
