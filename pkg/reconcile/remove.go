package reconcile

import (
	"context"
	"io/fs"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Remove releases a repository file: the home-side link is replaced by a
// plain copy and the repository file is deleted, through version control
// when it is tracked.
func (r *Reconciler) Remove(ctx context.Context, target string) (*types.RemoveResult, error) {
	p := r.ws.Paths
	abs, err := p.NormalizePath(target)
	if err != nil {
		return nil, err
	}

	// 1. inside this host's subtree
	rel, err := p.RelativeToHostRoot(abs)
	if err != nil {
		return nil, err
	}
	homePath := p.HomePath(rel)

	// 2. the home entry is a link to exactly this file
	if err := r.checkLink(abs, homePath); err != nil {
		return nil, err
	}

	// 3. there is content to copy back
	info, err := r.ws.FS.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		e := errors.Newf(errors.ErrInvalidInput, "%s is not a regular file", abs).WithDetail("path", abs)
		if err != nil {
			e.Wrapped = err
		}
		return nil, e
	}

	gitPath, err := p.RelativeToRoot(abs)
	if err != nil {
		return nil, err
	}
	untracked, err := r.ws.Repo.UntrackedFiles(ctx)
	if err != nil {
		return nil, err
	}
	tracked := !contains(untracked, gitPath)

	result := &types.RemoveResult{
		Target:   abs,
		HomePath: homePath,
		Tracked:  tracked,
		DryRun:   r.opts.DryRun,
	}
	if r.opts.DryRun {
		r.logger.Info().Str("target", abs).Str("home", homePath).Msg("Would release file")
		return result, nil
	}

	if err := r.release(abs, homePath); err != nil {
		return nil, err
	}

	if !tracked {
		r.logger.Debug().Str("file", gitPath).Msg("File is not committed yet, deleting it")
		if err := r.ws.FS.Remove(abs); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to delete %s", abs)
		}
		return result, nil
	}

	r.logger.Debug().Str("file", gitPath).Msg("File is committed, removing it")
	if err := r.ws.Repo.Remove(ctx, []string{gitPath}, true); err != nil {
		return nil, err
	}
	if err := r.ws.Repo.Commit(ctx, r.ws.App.CommitMessage("removed", gitPath)); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Reconciler) checkLink(target, homePath string) error {
	info, err := r.ws.FS.Lstat(homePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrLinkMismatch, "%s does not exist, nothing links to %s", homePath, target).
				WithDetail("path", homePath)
		}
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", homePath)
	}
	if !filesystem.IsSymlink(info) {
		return errors.Newf(errors.ErrLinkMismatch, "%s is not a link", homePath).
			WithDetail("path", homePath)
	}
	linkTarget, err := r.ws.FS.Readlink(homePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to read link %s", homePath)
	}
	if linkTarget != target {
		return errors.Newf(errors.ErrLinkMismatch, "%s links to %s, not %s", homePath, linkTarget, target).
			WithDetail("path", homePath).
			WithDetail("actual", linkTarget)
	}
	return nil
}

// release swaps the link at homePath for a copy of target, restoring the
// link if the copy fails.
func (r *Reconciler) release(target, homePath string) error {
	fsys := r.ws.FS
	if err := fsys.Remove(homePath); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to remove link %s", homePath)
	}
	if err := filesystem.CopyFile(fsys, target, homePath); err != nil {
		_ = fsys.Remove(homePath)
		if lnErr := fsys.Symlink(target, homePath); lnErr != nil {
			r.logger.Error().Err(lnErr).Str("path", homePath).Msg("Failed to restore link")
		}
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to copy %s to %s", target, homePath)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
