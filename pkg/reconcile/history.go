package reconcile

import (
	"context"
	"strings"

	"github.com/arthur-debert/mydot/pkg/errors"
)

// MessageFunc supplies a commit message for the given changed paths
type MessageFunc func(changed []string) (string, error)

// Commit stages every modified tracked file and commits it. It returns the
// committed paths, or nil when there was nothing to commit. message is used
// when non-empty; otherwise ask is called.
func (r *Reconciler) Commit(ctx context.Context, message string, ask MessageFunc) ([]string, error) {
	repo := r.ws.Repo
	dirty, err := repo.IsDirty(ctx)
	if err != nil {
		return nil, err
	}
	if !dirty {
		r.logger.Info().Msg("Nothing to commit")
		return nil, nil
	}

	changed, err := repo.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}
	staged, err := repo.DiffAgainstHead(ctx)
	if err != nil {
		return nil, err
	}
	paths := append(append([]string{}, staged...), changed...)
	for _, p := range paths {
		r.logger.Info().Str("file", p).Msg("Changed")
	}

	if strings.TrimSpace(message) == "" && ask != nil {
		if message, err = ask(paths); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "commit message cannot be empty")
	}
	if r.opts.DryRun {
		return paths, nil
	}

	if err := repo.Stage(ctx, changed...); err != nil {
		return nil, err
	}
	if err := repo.Commit(ctx, message); err != nil {
		return nil, err
	}
	return paths, nil
}

// Push sends the upstream branch to the configured remote
func (r *Reconciler) Push(ctx context.Context) error {
	pair, err := r.ws.Upstream(ctx)
	if err != nil {
		return err
	}
	r.logger.Info().Str("remote", r.ws.Remote()).Str("branch", pair.Local).Msg("Pushing")
	if r.opts.DryRun {
		return nil
	}
	return r.ws.Repo.Push(ctx, r.ws.Remote(), pair.Local)
}

// Pull fetches and fast-forwards the upstream branch
func (r *Reconciler) Pull(ctx context.Context) error {
	pair, err := r.ws.Upstream(ctx)
	if err != nil {
		return err
	}
	r.logger.Info().Str("remote", r.ws.Remote()).Str("branch", pair.Local).Msg("Pulling")
	if r.opts.DryRun {
		return nil
	}
	return r.ws.Repo.Pull(ctx, r.ws.Remote(), pair.Local)
}
