// Package filesystem provides the filesystem abstraction used by mydot.
//
// All mutation and inspection of the home directory and the repository goes
// through the FS interface, implemented on top of afero. Production code uses
// the OS-backed implementation; symlink-aware operations (Lstat, Symlink,
// Readlink) require a backend that supports them.
package filesystem
