package workspace

import (
	"context"

	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/logging"
)

// InitOptions extends Options with the clone parameters
type InitOptions struct {
	Options

	// URL of the remote holding the dotfiles
	URL string
	// Remote name, default origin
	Remote string
	// Branch to check out when the remote has it
	Branch string
}

// Init creates the repository from a remote and opens it. The repository
// root must not exist yet.
func Init(ctx context.Context, opts InitOptions) (*Workspace, error) {
	if opts.URL == "" {
		return nil, errors.New(errors.ErrInvalidInput, "remote URL cannot be empty")
	}
	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("workspace.init")
	done := logging.LogOperationStart(logger, "init")
	defer done()

	exists, err := filesystem.Exists(opts.FS, p.Root())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", p.Root())
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists", p.Root()).
			WithDetail("path", p.Root())
	}

	remote := opts.Remote
	if remote == "" {
		remote = config.DefaultRemote
	}

	repo, err := opts.Backend.Init(ctx, p.Root(), opts.Branch)
	if err != nil {
		return nil, err
	}
	if err := repo.AddRemote(ctx, remote, opts.URL); err != nil {
		return nil, err
	}
	if err := repo.Fetch(ctx, remote); err != nil {
		return nil, err
	}

	branches, err := repo.RemoteBranches(ctx, remote)
	if err != nil {
		return nil, err
	}
	branch := chooseBranch(branches, opts.Branch)
	if branch != "" {
		logger.Info().Str("remote", remote).Str("branch", branch).Msg("Checking out remote branch")
		if err := repo.CheckoutTracking(ctx, remote, branch); err != nil {
			return nil, err
		}
	} else {
		logger.Info().Str("remote", remote).Msg("Remote has no branches, starting empty")
	}

	opts.Root = p.Root()
	opts.Host = p.Host()
	opts.Home = p.Home()
	return Open(ctx, opts.Options)
}

// chooseBranch picks the preferred branch when the remote has it, otherwise
// the first remote branch.
func chooseBranch(branches []string, preferred string) string {
	for _, b := range branches {
		if b == preferred {
			return b
		}
	}
	if len(branches) > 0 {
		return branches[0]
	}
	return ""
}
