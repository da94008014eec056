// Package paths provides centralized path handling for mydot.
// It resolves the repository root, the host identity and the home directory
// and provides containment-checked relative-path arithmetic between them.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mydot/pkg/errors"
)

// Environment variable names
const (
	// EnvRepositoryRoot overrides the default repository location
	EnvRepositoryRoot = "MYDOT_PATH"

	// EnvHost overrides the detected hostname
	EnvHost = "MYDOT_HOST"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Repository layout. These names are part of the on-disk format shared by
// every machine using the same repository and are not configurable.
const (
	// DefaultRepositoryDir is the repository directory name under $HOME
	DefaultRepositoryDir = ".dotfiles"

	// ConfigFileName is the repository configuration file at the root
	ConfigFileName = "config.yaml"

	// GitDirName is the version-control metadata directory
	GitDirName = ".git"
)

// Paths holds the three anchors every mydot operation works from: the
// repository root, the host identity selecting a subtree of it, and the
// user's home directory.
type Paths struct {
	root string
	host string
	home string
}

// New creates a Paths instance. An empty root falls back to $MYDOT_PATH and
// then to ~/.dotfiles; an empty host falls back to $MYDOT_HOST and then to
// the machine's hostname.
func New(root, host string) (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	return NewWithHome(root, host, home)
}

// NewWithHome is New with an explicit home directory.
func NewWithHome(root, host, home string) (*Paths, error) {
	if home == "" {
		return nil, errors.New(errors.ErrInvalidInput, "home directory cannot be empty")
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for home directory")
	}

	if root == "" {
		root = os.Getenv(EnvRepositoryRoot)
	}
	if root == "" {
		root = filepath.Join(absHome, DefaultRepositoryDir)
	}
	root = expandHomeWith(root, absHome)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for repository root")
	}

	if host == "" {
		host, err = DetectHost()
		if err != nil {
			return nil, err
		}
	}
	if err := ValidateHostName(host); err != nil {
		return nil, err
	}

	return &Paths{
		root: filepath.Clean(absRoot),
		host: host,
		home: filepath.Clean(absHome),
	}, nil
}

// DetectHost returns the host identity: $MYDOT_HOST if set, otherwise the
// machine's hostname.
func DetectHost() (string, error) {
	if host := os.Getenv(EnvHost); host != "" {
		return host, nil
	}
	host, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to determine hostname")
	}
	return host, nil
}

// Root returns the repository root
func (p *Paths) Root() string {
	return p.root
}

// Host returns the host identity
func (p *Paths) Host() string {
	return p.host
}

// Home returns the home directory
func (p *Paths) Home() string {
	return p.home
}

// HostRoot returns the repository subtree for the current host
func (p *Paths) HostRoot() string {
	return p.HostRootFor(p.host)
}

// HostRootFor returns the repository subtree for any host
func (p *Paths) HostRootFor(host string) string {
	return filepath.Join(p.root, host)
}

// ConfigPath returns the repository configuration file path
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.root, ConfigFileName)
}

// GitDir returns the version-control metadata directory
func (p *Paths) GitDir() string {
	return filepath.Join(p.root, GitDirName)
}

// RepoPath maps a home-relative path to its location in the host subtree
func (p *Paths) RepoPath(rel string) string {
	return filepath.Join(p.HostRoot(), rel)
}

// HomePath maps a home-relative path to its location in the home directory
func (p *Paths) HomePath(rel string) string {
	return filepath.Join(p.home, rel)
}

// RelativeToHome returns the path of abs relative to the home directory.
// It fails with ErrPathContainment when abs is not strictly inside it.
func (p *Paths) RelativeToHome(abs string) (string, error) {
	rel, ok := RelativeTo(p.home, abs)
	if !ok {
		return "", errors.Newf(errors.ErrPathContainment, "%s is not in your home directory [%s]", abs, p.home).
			WithDetail("path", abs)
	}
	return rel, nil
}

// RelativeToHostRoot returns the path of abs relative to the host subtree.
// It fails with ErrPathContainment when abs is not strictly inside it.
func (p *Paths) RelativeToHostRoot(abs string) (string, error) {
	rel, ok := RelativeTo(p.HostRoot(), abs)
	if !ok {
		return "", errors.Newf(errors.ErrPathContainment, "%s is not in your repository [%s]", abs, p.HostRoot()).
			WithDetail("path", abs)
	}
	return rel, nil
}

// RelativeToRoot returns the slash-separated path of abs relative to the
// repository root, the form version control works with.
func (p *Paths) RelativeToRoot(abs string) (string, error) {
	rel, ok := RelativeTo(p.root, abs)
	if !ok {
		return "", errors.Newf(errors.ErrPathContainment, "%s is not in your repository [%s]", abs, p.root).
			WithDetail("path", abs)
	}
	return filepath.ToSlash(rel), nil
}

// IsInRepository reports whether abs is the repository root or inside it
func (p *Paths) IsInRepository(abs string) bool {
	return abs == p.root || Within(p.root, abs)
}

// NormalizePath expands ~, makes the path absolute and cleans it. Symlinks
// are deliberately not resolved.
func (p *Paths) NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expandHomeWith(path, p.home))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}

// Display shortens a path under the home directory to ~/...
func (p *Paths) Display(path string) string {
	if path == p.home {
		return "~"
	}
	if rel, ok := RelativeTo(p.home, path); ok {
		return "~/" + filepath.ToSlash(rel)
	}
	return path
}

// RelativeTo returns target relative to base when target is strictly inside
// base. Both paths must be absolute. Sibling directories sharing a name
// prefix (/a/dot and /a/dotfiles) are not considered nested.
func RelativeTo(base, target string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if filepath.IsAbs(rel) {
		return "", false
	}
	return rel, true
}

// Within reports whether target is strictly inside base
func Within(base, target string) bool {
	_, ok := RelativeTo(base, target)
	return ok
}

// expandHomeWith expands ~ and ~/... against the given home. ~user forms are
// returned unchanged.
func expandHomeWith(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to get home directory")
	}
	return homeDir, nil
}
