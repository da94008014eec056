// Package workspace builds the per-invocation context every mydot operation
// runs in: resolved paths, the filesystem, the version-control handle and
// both configuration layers.
package workspace

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/inventory"
	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/types"
	"github.com/arthur-debert/mydot/pkg/vcs"
)

// Options selects the repository and the collaborators to use. Zero values
// select the defaults: $MYDOT_PATH or ~/.dotfiles, the machine hostname,
// the OS filesystem and the git executable.
type Options struct {
	Root string
	Host string
	// Home overrides the home directory
	Home string

	FS      filesystem.FS
	Backend vcs.Backend
	App     *config.AppConfig

	// ReadOnly skips creating or updating config.yaml
	ReadOnly bool
}

// Workspace is the context value passed to the reconciler
type Workspace struct {
	Paths  *paths.Paths
	FS     filesystem.FS
	Repo   vcs.Repository
	Config *config.RepoConfig
	App    *config.AppConfig

	logger zerolog.Logger
}

func (o *Options) resolve() (*paths.Paths, error) {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Backend == nil {
		o.Backend = vcs.GitBackend{}
	}
	if o.App == nil {
		app, err := config.LoadDefaults()
		if err != nil {
			return nil, err
		}
		o.App = app
	}
	if o.Root == "" {
		o.Root = o.App.Path
	}
	if o.Home != "" {
		return paths.NewWithHome(o.Root, o.Host, o.Home)
	}
	return paths.New(o.Root, o.Host)
}

// Open resolves the repository and loads its configuration, registering
// the current host in config.yaml when needed.
func Open(ctx context.Context, opts Options) (*Workspace, error) {
	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("workspace")

	info, err := opts.FS.Stat(p.Root())
	if err != nil || !info.IsDir() {
		e := errors.Newf(errors.ErrRepositoryMissing,
			"%s does not exist, please run `mydot init <url>` to create it", p.Root()).
			WithDetail("path", p.Root())
		if err != nil && !os.IsNotExist(err) {
			e.Wrapped = err
		}
		return nil, e
	}

	repo, err := opts.Backend.Open(ctx, p.Root())
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Paths:  p,
		FS:     opts.FS,
		Repo:   repo,
		App:    opts.App,
		logger: logger,
	}
	if err := ws.loadConfig(ctx, opts.ReadOnly); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", p.Root()).
		Str("host", p.Host()).
		Msg("Workspace opened")
	return ws, nil
}

// loadConfig reads config.yaml, creating it or adding the current host and
// committing the result.
func (w *Workspace) loadConfig(ctx context.Context, readOnly bool) error {
	cfg, exists, err := config.LoadRepoConfig(w.FS, w.Paths.ConfigPath())
	if err != nil {
		return err
	}
	w.Config = cfg

	added := cfg.AddHost(w.Paths.Host())
	if exists && !added {
		return nil
	}
	if readOnly {
		w.logger.Debug().Bool("exists", exists).Msg("Repository config not persisted in read-only mode")
		return nil
	}

	var message string
	if !exists {
		w.logger.Info().Str("path", w.Paths.ConfigPath()).Msg("Creating repository config")
		message = w.App.CommitMessage("adding", paths.ConfigFileName)
	} else {
		w.logger.Info().Str("host", w.Paths.Host()).Msg("Registering host")
		message = w.App.CommitMessage("registering host", w.Paths.Host())
	}

	if err := cfg.Save(w.FS, w.Paths.ConfigPath()); err != nil {
		return err
	}
	if err := w.Repo.Stage(ctx, paths.ConfigFileName); err != nil {
		return err
	}
	return w.Repo.Commit(ctx, message)
}

// Scanner returns an inventory scanner over this workspace
func (w *Workspace) Scanner() *inventory.Scanner {
	return inventory.NewScanner(w.FS, w.Paths)
}

// Remote returns the configured upstream remote
func (w *Workspace) Remote() string {
	if w.Config.Remote == "" {
		return config.DefaultRemote
	}
	return w.Config.Remote
}

// Branch returns the configured upstream branch, or the current branch
func (w *Workspace) Branch(ctx context.Context) (string, error) {
	if w.Config.Branch != "" {
		return w.Config.Branch, nil
	}
	return w.Repo.CurrentBranch(ctx)
}

// Upstream pairs the local branch with <remote>/<branch>
func (w *Workspace) Upstream(ctx context.Context) (types.BranchPair, error) {
	branch, err := w.Branch(ctx)
	if err != nil {
		return types.BranchPair{}, err
	}
	return types.BranchPair{Local: branch, Upstream: w.Remote() + "/" + branch}, nil
}
