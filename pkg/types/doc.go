// Package types defines the core data types shared by the mydot packages:
// the managed file record and its reconciliation status, the per-file sync
// outcome, the repository status report and the version-control records
// (commits, remotes) that feed it.
package types
