// Package reconcile converges the home directory with the repository.
//
// Sync acts on every managed file of the current host. Add and Remove move a
// single file into or out of management. Every precondition is checked
// before anything is mutated; a failed precondition leaves the filesystem
// and the repository untouched.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/workspace"
)

// Options control how transitions are applied
type Options struct {
	// DryRun checks preconditions and reports what would happen
	DryRun bool
	// CreateDirs lets sync create missing parent directories in the home
	// directory
	CreateDirs bool
}

// Reconciler performs state transitions within one workspace
type Reconciler struct {
	ws     *workspace.Workspace
	opts   Options
	logger zerolog.Logger
}

// New creates a reconciler
func New(ws *workspace.Workspace, opts Options) *Reconciler {
	return &Reconciler{
		ws:     ws,
		opts:   opts,
		logger: logging.GetLogger("reconcile"),
	}
}

// Workspace returns the workspace the reconciler acts on
func (r *Reconciler) Workspace() *workspace.Workspace {
	return r.ws
}
