package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/types"
)

// DefaultGitBinary is looked up on PATH
const DefaultGitBinary = "git"

// fieldSep separates fields in custom log formats
const fieldSep = "\x1f"

// GitBackend creates GitRepository values
type GitBackend struct {
	// Binary is the git executable; empty means DefaultGitBinary
	Binary string
}

// Open implements Backend
func (b GitBackend) Open(ctx context.Context, path string) (Repository, error) {
	return Open(ctx, b.Binary, path)
}

// Init implements Backend
func (b GitBackend) Init(ctx context.Context, path, branch string) (Repository, error) {
	return Init(ctx, b.Binary, path, branch)
}

// GitRepository implements Repository by shelling out to git
type GitRepository struct {
	binary string
	root   string
}

// Open returns a repository rooted exactly at path. A path inside a work
// tree but not at its top is rejected.
func Open(ctx context.Context, binary, path string) (*GitRepository, error) {
	if binary == "" {
		binary = DefaultGitBinary
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to resolve %s", path)
	}
	r := &GitRepository{binary: binary, root: abs}

	top, err := r.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidRepository, "%s is not a git repository", abs).
			WithDetail("path", abs)
	}

	want, err := filepath.EvalSymlinks(abs)
	if err != nil {
		want = abs
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(top))
	if err != nil {
		got = strings.TrimSpace(top)
	}
	if filepath.Clean(want) != filepath.Clean(got) {
		return nil, errors.Newf(errors.ErrInvalidRepository,
			"%s is not the root of a git repository (root is %s)", abs, got).
			WithDetail("path", abs)
	}
	return r, nil
}

// Init creates a new repository at path, which may not exist yet
func Init(ctx context.Context, binary, path, branch string) (*GitRepository, error) {
	if binary == "" {
		binary = DefaultGitBinary
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to resolve %s", path)
	}

	args := []string{"init", "-q"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, abs)

	// the work tree does not exist yet, so no -C
	logger := logging.GetLogger("vcs.git")
	logging.LogCommand(logger, binary, args)
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCS, "git init failed: %s", strings.TrimSpace(stderr.String()))
	}
	return &GitRepository{binary: binary, root: abs}, nil
}

// Root implements Repository
func (r *GitRepository) Root() string {
	return r.root
}

func (r *GitRepository) IsDirty(ctx context.Context) (bool, error) {
	out, err := r.output(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

func (r *GitRepository) UntrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

func (r *GitRepository) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "diff", "--name-only", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

func (r *GitRepository) DiffAgainstHead(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "diff", "--cached", "--name-only", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

func (r *GitRepository) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	return r.run(ctx, append([]string{"add", "-A", "--"}, paths...)...)
}

func (r *GitRepository) Commit(ctx context.Context, message string) error {
	return r.run(ctx, "commit", "-q", "-m", message)
}

func (r *GitRepository) Remove(ctx context.Context, paths []string, fromWorkingTree bool) error {
	if len(paths) == 0 {
		return nil
	}
	args := []string{"rm", "-q"}
	if fromWorkingTree {
		args = append(args, "-f")
	} else {
		args = append(args, "--cached")
	}
	args = append(args, "--")
	return r.run(ctx, append(args, paths...)...)
}

func (r *GitRepository) CommitsAhead(ctx context.Context, pair types.BranchPair) (int, error) {
	return r.count(ctx, pair.Upstream+".."+pair.Local)
}

func (r *GitRepository) CommitsBehind(ctx context.Context, pair types.BranchPair) (int, error) {
	return r.count(ctx, pair.Local+".."+pair.Upstream)
}

func (r *GitRepository) count(ctx context.Context, rangeSpec string) (int, error) {
	out, err := r.output(ctx, "rev-list", "--count", rangeSpec)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrVCS, "unexpected rev-list output %q", out)
	}
	return n, nil
}

func (r *GitRepository) CommitsBetween(ctx context.Context, from, to string) ([]types.Commit, error) {
	format := "--format=%H" + fieldSep + "%cI" + fieldSep + "%s"
	out, err := r.output(ctx, "log", format, from+".."+to)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

func parseLog(out string) []types.Commit {
	var commits []types.Commit
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, fieldSep, 3)
		if len(fields) != 3 {
			continue
		}
		c := types.Commit{Hash: fields[0], Summary: fields[2]}
		if ts, err := time.Parse(time.RFC3339, fields[1]); err == nil {
			c.Date = ts
		}
		commits = append(commits, c)
	}
	return commits
}

func (r *GitRepository) RefExists(ctx context.Context, ref string) (bool, error) {
	cmd := r.command(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrVCS, "git rev-parse failed")
	}
	return true, nil
}

func (r *GitRepository) Remotes(ctx context.Context) ([]types.Remote, error) {
	out, err := r.output(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return parseRemotes(out), nil
}

// parseRemotes reads `git remote -v` lines: "origin\tURL (fetch)"
func parseRemotes(out string) []types.Remote {
	var remotes []types.Remote
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		remote := types.Remote{Name: fields[0], URL: fields[1]}
		if len(fields) > 2 {
			remote.Direction = strings.Trim(fields[2], "()")
		}
		remotes = append(remotes, remote)
	}
	return remotes
}

func (r *GitRepository) AddRemote(ctx context.Context, name, url string) error {
	return r.run(ctx, "remote", "add", name, url)
}

func (r *GitRepository) Fetch(ctx context.Context, remote string) error {
	return r.run(ctx, "fetch", "-q", remote)
}

func (r *GitRepository) Push(ctx context.Context, remote, branch string) error {
	return r.run(ctx, "push", "-q", remote, branch)
}

func (r *GitRepository) Pull(ctx context.Context, remote, branch string) error {
	return r.run(ctx, "pull", "-q", "--ff-only", remote, branch)
}

func (r *GitRepository) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	out, err := r.output(ctx, "for-each-ref", "--format=%(refname)", "refs/remotes/"+remote+"/")
	if err != nil {
		return nil, err
	}
	prefix := "refs/remotes/" + remote + "/"
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimPrefix(strings.TrimSpace(line), prefix)
		if name == "" || name == "HEAD" {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

func (r *GitRepository) CheckoutTracking(ctx context.Context, remote, branch string) error {
	return r.run(ctx, "checkout", "-q", "-B", branch, "--track", remote+"/"+branch)
}

func (r *GitRepository) CurrentBranch(ctx context.Context) (string, error) {
	// symbolic-ref works on an unborn branch, rev-parse does not
	out, err := r.output(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCS, "HEAD is detached")
	}
	return strings.TrimSpace(out), nil
}

func (r *GitRepository) Head(ctx context.Context) (string, error) {
	ok, err := r.RefExists(ctx, "HEAD")
	if err != nil || !ok {
		return "", err
	}
	out, err := r.output(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *GitRepository) command(ctx context.Context, args ...string) *exec.Cmd {
	full := append([]string{"-C", r.root}, args...)
	logging.LogCommand(logging.GetLogger("vcs.git"), r.binary, full)
	return exec.CommandContext(ctx, r.binary, full...)
}

func (r *GitRepository) run(ctx context.Context, args ...string) error {
	_, err := r.output(ctx, args...)
	return err
}

func (r *GitRepository) output(ctx context.Context, args ...string) (string, error) {
	cmd := r.command(ctx, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Wrapf(err, errors.ErrVCS, "git %s failed: %s", args[0], msg).
			WithDetail("args", args)
	}
	return stdout.String(), nil
}

func splitNul(out string) []string {
	var paths []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
