package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Exists reports whether a directory entry exists at path. Symbolic links
// are not followed, so a dangling link exists. A path below a regular file
// does not exist.
func Exists(fsys FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

// IsSymlink reports whether info describes a symbolic link
func IsSymlink(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}

// CopyFile copies the content of src to dst as an independent regular file
// with the same permission bits. src is read through symbolic links.
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	// WriteFile is subject to the umask
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}

// Move renames src to dst, falling back to copy and remove when the two are
// on different devices.
func Move(fsys FS, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := CopyFile(fsys, src, dst); err != nil {
		return err
	}
	if err := fsys.Remove(src); err != nil {
		_ = fsys.Remove(dst)
		return fmt.Errorf("remove %s after copy: %w", src, err)
	}
	return nil
}
