package types

// ReconciliationStatus classifies how the home-directory side of a managed
// file relates to its repository copy. The four values are mutually
// exclusive and exhaustive.
type ReconciliationStatus string

const (
	// StatusInSync - home path is a symlink whose raw target equals the repository path
	StatusInSync ReconciliationStatus = "ok"

	// StatusLinkMissing - nothing exists at the home path
	StatusLinkMissing ReconciliationStatus = "missing"

	// StatusTargetNotLink - home path exists but is not a symlink
	StatusTargetNotLink ReconciliationStatus = "not-a-link"

	// StatusLinkWrongTarget - home path is a symlink pointing elsewhere
	StatusLinkWrongTarget ReconciliationStatus = "wrong-target"
)

// AllStatuses lists every status in display order
var AllStatuses = []ReconciliationStatus{
	StatusInSync,
	StatusLinkMissing,
	StatusTargetNotLink,
	StatusLinkWrongTarget,
}

func (s ReconciliationStatus) String() string {
	return string(s)
}

// Description returns a human-readable explanation of the status
func (s ReconciliationStatus) Description() string {
	switch s {
	case StatusInSync:
		return "linked"
	case StatusLinkMissing:
		return "link missing"
	case StatusTargetNotLink:
		return "file exists in home directory and is not a link"
	case StatusLinkWrongTarget:
		return "link points somewhere else"
	default:
		return "unknown"
	}
}

// NeedsResolution reports whether the status can only be fixed by the user
func (s ReconciliationStatus) NeedsResolution() bool {
	return s == StatusTargetNotLink || s == StatusLinkWrongTarget
}
