// Package inventory discovers the managed files of a host and classifies
// each one against the home directory. It never mutates anything.
package inventory

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Scanner walks host subtrees of the repository
type Scanner struct {
	fs     filesystem.FS
	paths  *paths.Paths
	logger zerolog.Logger
}

// NewScanner creates a scanner over the given repository layout
func NewScanner(fsys filesystem.FS, p *paths.Paths) *Scanner {
	return &Scanner{
		fs:     fsys,
		paths:  p,
		logger: logging.GetLogger("inventory.scanner"),
	}
}

// Scan returns the classified managed files of the current host
func (s *Scanner) Scan() ([]types.ManagedFile, error) {
	return s.ScanHost(s.paths.Host())
}

// ScanHost returns the classified managed files of host in lexical order.
// A missing host subtree yields no files.
func (s *Scanner) ScanHost(host string) ([]types.ManagedFile, error) {
	if err := paths.ValidateHostName(host); err != nil {
		return nil, err
	}
	// root/config.yaml sits beside the host directories, never inside one
	hostRoot := s.paths.HostRootFor(host)

	s.logger.Debug().
		Str("host", host).
		Str("path", hostRoot).
		Msg("Scanning host")

	var files []types.ManagedFile
	err := s.fs.Walk(hostRoot, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == hostRoot && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == hostRoot {
			if !info.IsDir() {
				s.logger.Warn().Str("path", path).Msg("Host entry is not a directory")
			}
			return nil
		}

		if info.Name() == paths.GitDirName {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() && !filesystem.IsSymlink(info) {
			s.logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("Skipping special file")
			return nil
		}

		rel, ok := paths.RelativeTo(hostRoot, path)
		if !ok {
			return nil
		}
		file := types.ManagedFile{
			RepoPath:     path,
			RelativePath: rel,
			Home:         s.paths.Home(),
		}
		s.classify(&file)
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to scan %s", hostRoot)
	}

	s.logger.Debug().
		Str("host", host).
		Int("files", len(files)).
		Msg("Host scan complete")

	return files, nil
}

// Hosts lists the host subtrees present in the repository
func (s *Scanner) Hosts() ([]string, error) {
	entries, err := s.fs.ReadDir(s.paths.Root())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to list %s", s.paths.Root())
	}
	var hosts []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != paths.GitDirName {
			hosts = append(hosts, entry.Name())
		}
	}
	return hosts, nil
}

func (s *Scanner) classify(file *types.ManagedFile) {
	if err := ClassifyFile(s.fs, file); err != nil {
		s.logger.Warn().Err(err).Str("path", file.HomePath()).Msg("Could not inspect home entry")
	}
}
