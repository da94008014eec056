package types

import "path/filepath"

// ManagedFile is one file tracked in the repository under a host subtree
type ManagedFile struct {
	// RepoPath is the absolute path inside <root>/<host>/
	RepoPath string `json:"repoPath"`

	// RelativePath is the suffix shared by the repository and home locations
	RelativePath string `json:"relativePath"`

	// Home is the home directory the file is linked into
	Home string `json:"-"`

	// Status is recomputed on every scan
	Status ReconciliationStatus `json:"status"`

	// LinkTarget is the raw target of the home-side symlink, when there is one
	LinkTarget string `json:"linkTarget,omitempty"`
}

// HomePath returns the location in the home directory that links to RepoPath
func (f ManagedFile) HomePath() string {
	return filepath.Join(f.Home, f.RelativePath)
}
