package types

import "time"

// Commit is a single history entry
type Commit struct {
	Hash    string    `json:"hash"`
	Date    time.Time `json:"date"`
	Summary string    `json:"summary"`
}

// Remote is a configured remote and one of its URLs
type Remote struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Direction string `json:"direction"`
}

// BranchPair names a local branch and the upstream it is compared against
type BranchPair struct {
	Local    string `json:"local"`
	Upstream string `json:"upstream"`
}

// StatusReport is the read-only repository summary
type StatusReport struct {
	Root      string   `json:"root"`
	Host      string   `json:"host"`
	Branch    string   `json:"branch"`
	Head      string   `json:"head,omitempty"`
	Remotes   []Remote `json:"remotes"`
	Dirty     bool     `json:"dirty"`
	Changed   []string `json:"changed"`
	Untracked []string `json:"untracked"`
	Staged    []string `json:"staged"`

	// Upstream is <remote>/<branch>. Ahead, Behind and CommitsAhead are only
	// meaningful when UpstreamAvailable is true.
	Upstream          string   `json:"upstream"`
	UpstreamAvailable bool     `json:"upstreamAvailable"`
	Ahead             int      `json:"ahead"`
	Behind            int      `json:"behind"`
	CommitsAhead      []Commit `json:"commitsAhead"`

	Files     []ManagedFile `json:"files"`
	Timestamp time.Time     `json:"timestamp"`
}

// Clean reports whether nothing is pending in the repository
func (r *StatusReport) Clean() bool {
	return !r.Dirty && len(r.Untracked) == 0 && len(r.Staged) == 0
}

// Inventory is the classified file list of one host
type Inventory struct {
	Host  string        `json:"host"`
	Files []ManagedFile `json:"files"`
}

// HostList describes the host subtrees of a repository. Hosts are the
// subtrees present on disk, Registered the hosts recorded in config.yaml.
type HostList struct {
	Current    string   `json:"current"`
	Hosts      []string `json:"hosts"`
	Registered []string `json:"registered"`
}
