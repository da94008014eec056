package reconcile

import (
	"context"
	"time"

	"github.com/arthur-debert/mydot/pkg/types"
)

// List returns the classified inventory of host; an empty host means the
// current one.
func (r *Reconciler) List(host string) ([]types.ManagedFile, error) {
	if host == "" {
		host = r.ws.Paths.Host()
	}
	return r.ws.Scanner().ScanHost(host)
}

// Status builds the read-only repository summary. A missing upstream ref
// leaves the ahead/behind section unavailable instead of failing.
func (r *Reconciler) Status(ctx context.Context) (*types.StatusReport, error) {
	repo := r.ws.Repo
	report := &types.StatusReport{
		Root:      r.ws.Paths.Root(),
		Host:      r.ws.Paths.Host(),
		Timestamp: time.Now(),
	}

	var err error
	if report.Head, err = repo.Head(ctx); err != nil {
		return nil, err
	}
	if report.Remotes, err = repo.Remotes(ctx); err != nil {
		return nil, err
	}
	if report.Dirty, err = repo.IsDirty(ctx); err != nil {
		return nil, err
	}
	if report.Changed, err = repo.ChangedFiles(ctx); err != nil {
		return nil, err
	}
	if report.Untracked, err = repo.UntrackedFiles(ctx); err != nil {
		return nil, err
	}
	if report.Staged, err = repo.DiffAgainstHead(ctx); err != nil {
		return nil, err
	}

	pair, err := r.ws.Upstream(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Cannot determine branch, skipping upstream comparison")
	} else {
		report.Branch = pair.Local
		report.Upstream = pair.Upstream
		if err := r.compareUpstream(ctx, pair, report); err != nil {
			return nil, err
		}
	}

	if report.Files, err = r.ws.Scanner().Scan(); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Reconciler) compareUpstream(ctx context.Context, pair types.BranchPair, report *types.StatusReport) error {
	repo := r.ws.Repo
	ok, err := repo.RefExists(ctx, pair.Upstream)
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Debug().Str("upstream", pair.Upstream).Msg("Upstream ref missing")
		return nil
	}
	local, err := repo.RefExists(ctx, pair.Local)
	if err != nil || !local {
		return err
	}

	report.UpstreamAvailable = true
	if report.Ahead, err = repo.CommitsAhead(ctx, pair); err != nil {
		return err
	}
	if report.Behind, err = repo.CommitsBehind(ctx, pair); err != nil {
		return err
	}
	if report.Ahead > 0 {
		if report.CommitsAhead, err = repo.CommitsBetween(ctx, pair.Upstream, pair.Local); err != nil {
			return err
		}
	}
	return nil
}

// Clean reports whether the repository has nothing pending: no changes to
// tracked files, no untracked files and no staged diff against HEAD.
func (r *Reconciler) Clean(ctx context.Context) (bool, error) {
	repo := r.ws.Repo
	dirty, err := repo.IsDirty(ctx)
	if err != nil || dirty {
		return false, err
	}
	untracked, err := repo.UntrackedFiles(ctx)
	if err != nil || len(untracked) > 0 {
		return false, err
	}
	staged, err := repo.DiffAgainstHead(ctx)
	if err != nil {
		return false, err
	}
	return len(staged) == 0, nil
}
