package reconcile

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Sync links every managed file whose home entry is missing. Files needing
// manual resolution and per-file failures are reported and never abort the
// run; only a scan failure returns an error.
func (r *Reconciler) Sync(ctx context.Context) (*types.SyncReport, error) {
	done := logging.LogOperationStart(r.logger, "sync")
	defer done()

	files, err := r.ws.Scanner().Scan()
	if err != nil {
		return nil, err
	}

	report := &types.SyncReport{
		Host:    r.ws.Paths.Host(),
		DryRun:  r.opts.DryRun,
		Results: make([]types.SyncResult, 0, len(files)),
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := r.syncFile(file)
		r.logResult(res)
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (r *Reconciler) syncFile(file types.ManagedFile) types.SyncResult {
	res := types.SyncResult{File: file}

	switch file.Status {
	case types.StatusInSync:
		res.Outcome = types.OutcomeUnchanged

	case types.StatusLinkMissing:
		if r.opts.DryRun {
			res.Outcome = types.OutcomeWouldLink
			res.Message = "would link to " + file.RepoPath
			return res
		}
		if err := r.link(file); err != nil {
			res.Outcome = types.OutcomeFailed
			res.Err = err
			res.Message = errors.Describe(err)
			return res
		}
		res.Outcome = types.OutcomeLinked
		res.File.Status = types.StatusInSync
		res.File.LinkTarget = file.RepoPath
		res.Message = "linked to " + file.RepoPath

	case types.StatusTargetNotLink:
		res.Outcome = types.OutcomeNeedsResolution
		res.Err = errors.Newf(errors.ErrAmbiguousState,
			"%s exists and is not a link, move it away and sync again", file.HomePath()).
			WithDetail("path", file.HomePath())
		res.Message = errors.Describe(res.Err)

	case types.StatusLinkWrongTarget:
		res.Outcome = types.OutcomeNeedsResolution
		res.Err = errors.Newf(errors.ErrAmbiguousState,
			"%s links to %s instead of %s", file.HomePath(), file.LinkTarget, file.RepoPath).
			WithDetail("path", file.HomePath()).
			WithDetail("actual", file.LinkTarget).
			WithDetail("expected", file.RepoPath)
		res.Message = errors.Describe(res.Err)

	default:
		res.Outcome = types.OutcomeFailed
		res.Err = errors.Newf(errors.ErrInternal, "unknown status %q for %s", file.Status, file.RelativePath)
		res.Message = errors.Describe(res.Err)
	}
	return res
}

// link creates the home-side symlink of a LinkMissing file
func (r *Reconciler) link(file types.ManagedFile) error {
	homePath := file.HomePath()
	parent := filepath.Dir(homePath)

	if r.opts.CreateDirs {
		if err := r.ws.FS.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to create %s", parent).
				WithDetail("path", homePath)
		}
	} else {
		info, err := r.ws.FS.Stat(parent)
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrFilesystem,
				"directory %s does not exist (use --mkdir to create it)", parent).
				WithDetail("path", homePath)
		}
	}

	if err := r.ws.FS.Symlink(file.RepoPath, homePath); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to link %s", homePath).
			WithDetail("path", homePath)
	}
	return nil
}

func (r *Reconciler) logResult(res types.SyncResult) {
	switch res.Outcome {
	case types.OutcomeFailed:
		r.logger.Error().Err(res.Err).Str("file", res.File.RelativePath).Msg("Link failed")
	case types.OutcomeNeedsResolution:
		r.logger.Warn().Str("file", res.File.RelativePath).Str("status", res.File.Status.String()).Msg(res.Message)
	case types.OutcomeLinked:
		r.logger.Info().Str("file", res.File.RelativePath).Msg("Linked")
	default:
		r.logger.Debug().Str("file", res.File.RelativePath).Str("outcome", string(res.Outcome)).Msg("Sync")
	}
}
