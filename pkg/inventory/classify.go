package inventory

import (
	"io/fs"
	"syscall"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Classify determines the status of homePath relative to repoPath: lstat
// existence, then symlink check, then byte-exact comparison of the raw link
// target. The target is never resolved.
//
// Inspection failures other than "not exist" classify as TargetNotLink and
// are returned alongside so the caller can report them.
func Classify(fsys filesystem.FS, repoPath, homePath string) (types.ReconciliationStatus, string, error) {
	info, err := fsys.Lstat(homePath)
	if err != nil {
		// ENOTDIR: an ancestor is a file, so the entry cannot exist
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return types.StatusLinkMissing, "", nil
		}
		return types.StatusTargetNotLink, "", err
	}

	if !filesystem.IsSymlink(info) {
		return types.StatusTargetNotLink, "", nil
	}

	target, err := fsys.Readlink(homePath)
	if err != nil {
		return types.StatusTargetNotLink, "", err
	}
	if target == repoPath {
		return types.StatusInSync, target, nil
	}
	return types.StatusLinkWrongTarget, target, nil
}

// ClassifyFile recomputes the status of file in place
func ClassifyFile(fsys filesystem.FS, file *types.ManagedFile) error {
	status, target, err := Classify(fsys, file.RepoPath, file.HomePath())
	file.Status = status
	file.LinkTarget = target
	return err
}
