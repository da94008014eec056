package reconcile

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Add adopts a home-directory file: it moves the file into the host subtree,
// links the original location to it and commits the new file.
func (r *Reconciler) Add(ctx context.Context, source string) (*types.AddResult, error) {
	p := r.ws.Paths
	src, err := p.NormalizePath(source)
	if err != nil {
		return nil, err
	}

	// 1. under home
	rel, err := p.RelativeToHome(src)
	if err != nil {
		return nil, err
	}
	// 2. not inside the repository
	if p.IsInRepository(src) {
		return nil, errors.Newf(errors.ErrPathContainment, "%s is already in your repository [%s]", src, p.Root()).
			WithDetail("path", src)
	}
	// 3. no repository counterpart yet
	dest := p.RepoPath(rel)
	exists, err := filesystem.Exists(r.ws.FS, dest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", dest)
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyManaged, "%s is already managed [%s]", src, dest).
			WithDetail("path", src).
			WithDetail("destination", dest)
	}
	// 4. destination ancestors are directories where they exist
	if err := r.checkAncestors(dest); err != nil {
		return nil, err
	}
	// 5. source is a regular file
	if err := r.checkSource(src); err != nil {
		return nil, err
	}

	result := &types.AddResult{
		Source:       src,
		Destination:  dest,
		RelativePath: rel,
		DryRun:       r.opts.DryRun,
	}
	if r.opts.DryRun {
		r.logger.Info().Str("source", src).Str("destination", dest).Msg("Would adopt file")
		return result, nil
	}

	if err := r.adopt(src, dest); err != nil {
		return nil, err
	}

	gitPath, err := p.RelativeToRoot(dest)
	if err != nil {
		return nil, err
	}
	if err := r.ws.Repo.Stage(ctx, gitPath); err != nil {
		return nil, err
	}
	if err := r.ws.Repo.Commit(ctx, r.ws.App.CommitMessage("adding", gitPath)); err != nil {
		return nil, err
	}

	r.logger.Info().Str("source", src).Str("destination", dest).Msg("Adopted file")
	return result, nil
}

// checkAncestors walks from the destination's parent up to the host root
func (r *Reconciler) checkAncestors(dest string) error {
	hostRoot := r.ws.Paths.HostRoot()
	for dir := filepath.Dir(dest); ; dir = filepath.Dir(dir) {
		info, err := r.ws.FS.Lstat(dir)
		if err == nil && !info.IsDir() {
			return errors.Newf(errors.ErrFilesystem, "%s exists and is not a directory", dir).
				WithDetail("path", dir)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", dir)
		}
		if dir == hostRoot || dir == filepath.Dir(dir) {
			return nil
		}
	}
}

func (r *Reconciler) checkSource(src string) error {
	info, err := r.ws.FS.Lstat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrInvalidInput, "%s does not exist", src).WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", src)
	}
	switch {
	case filesystem.IsSymlink(info):
		return errors.Newf(errors.ErrInvalidInput, "%s is a symbolic link", src).WithDetail("path", src)
	case info.IsDir():
		return errors.Newf(errors.ErrInvalidInput, "%s is a directory, add the files inside it", src).
			WithDetail("path", src)
	case !info.Mode().IsRegular():
		return errors.Newf(errors.ErrInvalidInput, "%s is not a regular file", src).WithDetail("path", src)
	}
	return nil
}

// adopt moves src to dest and links src back, undoing the move when the
// link cannot be created.
func (r *Reconciler) adopt(src, dest string) error {
	fsys := r.ws.FS
	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create %s", filepath.Dir(dest))
	}
	if err := filesystem.Move(fsys, src, dest); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to move %s to %s", src, dest)
	}
	if err := fsys.Symlink(dest, src); err != nil {
		if rbErr := filesystem.Move(fsys, dest, src); rbErr != nil {
			r.logger.Error().Err(rbErr).Str("file", dest).Msg("Rollback failed, file left in repository")
		}
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to link %s", src).WithDetail("path", src)
	}
	return nil
}
