package types

// SyncOutcome is what sync did, or would do, for one managed file
type SyncOutcome string

const (
	OutcomeUnchanged       SyncOutcome = "unchanged"
	OutcomeLinked          SyncOutcome = "linked"
	OutcomeWouldLink       SyncOutcome = "would-link"
	OutcomeNeedsResolution SyncOutcome = "needs-resolution"
	OutcomeFailed          SyncOutcome = "failed"
)

// SyncResult is the per-file result of a sync
type SyncResult struct {
	File    ManagedFile `json:"file"`
	Outcome SyncOutcome `json:"outcome"`
	Message string      `json:"message,omitempty"`
	Err     error       `json:"-"`
}

// SyncReport collects the results of one sync run in scanner order
type SyncReport struct {
	Host    string       `json:"host"`
	DryRun  bool         `json:"dryRun"`
	Results []SyncResult `json:"results"`
}

// Count returns the number of results with the given outcome
func (r *SyncReport) Count(outcome SyncOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed reports whether any file failed or needs manual resolution
func (r *SyncReport) Failed() bool {
	return r.Count(OutcomeFailed) > 0 || r.Count(OutcomeNeedsResolution) > 0
}

// AddResult describes an adopted file
type AddResult struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	RelativePath string `json:"relativePath"`
	DryRun       bool   `json:"dryRun"`
}

// RemoveResult describes a file released from management
type RemoveResult struct {
	Target   string `json:"target"`
	HomePath string `json:"homePath"`
	Tracked  bool   `json:"tracked"`
	DryRun   bool   `json:"dryRun"`
}
