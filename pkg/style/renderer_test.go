package style

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/types"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func file(rel string, status types.ReconciliationStatus) types.ManagedFile {
	return types.ManagedFile{
		RepoPath:     "/home/u/.dotfiles/box1/" + rel,
		RelativePath: rel,
		Home:         "/home/u",
		Status:       status,
	}
}

func TestRenderResult_Inventory(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "/home/u")

	wrong := file(".profile", types.StatusLinkWrongTarget)
	wrong.LinkTarget = "/etc/profile"
	inv := &types.Inventory{Host: "box1", Files: []types.ManagedFile{
		file(".bashrc", types.StatusInSync),
		file(".vimrc", types.StatusLinkMissing),
		wrong,
	}}

	require.NoError(t, r.RenderResult(inv))
	out := buf.String()
	assert.Contains(t, out, "Host box1")
	assert.Contains(t, out, "~/.bashrc")
	assert.Contains(t, out, "~/.vimrc")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "points to /etc/profile")
}

func TestRenderResult_EmptyInventory(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "/home/u")

	require.NoError(t, r.RenderResult(&types.Inventory{Host: "box1"}))
	assert.Contains(t, buf.String(), "no files managed")
}

func TestSync(t *testing.T) {
	r := NewRenderer(nil, "/home/u")
	report := &types.SyncReport{
		Host:   "box1",
		DryRun: true,
		Results: []types.SyncResult{
			{File: file(".bashrc", types.StatusInSync), Outcome: types.OutcomeUnchanged},
			{File: file(".vimrc", types.StatusLinkMissing), Outcome: types.OutcomeWouldLink},
			{File: file(".profile", types.StatusTargetNotLink), Outcome: types.OutcomeNeedsResolution, Message: "a regular file is in the way"},
		},
	}

	out, err := r.Sync(report)
	require.NoError(t, err)
	assert.Contains(t, out, "Syncing host box1 (dry run)")
	assert.Contains(t, out, PendingMark+" ~/.vimrc")
	assert.Contains(t, out, "a regular file is in the way")
	assert.Contains(t, out, "1 linked, 1 unchanged, 1 need resolution")
	assert.NotContains(t, out, "failed")
}

func TestStatus(t *testing.T) {
	r := NewRenderer(nil, "/home/u")
	date := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		report   types.StatusReport
		contains []string
		excludes []string
	}{
		{
			name: "clean and up to date",
			report: types.StatusReport{
				Root: "/home/u/.dotfiles", Host: "box1", Branch: "main", Head: "abc1234",
				Upstream: "origin/main", UpstreamAvailable: true,
			},
			contains: []string{"~/.dotfiles on main (abc1234)", "Up to date with origin/main", "Nothing to commit"},
			excludes: []string{"Changed", "ahead"},
		},
		{
			name: "ahead with pending changes",
			report: types.StatusReport{
				Root: "/home/u/.dotfiles", Host: "box1", Branch: "main",
				Remotes:  []types.Remote{{Name: "origin", URL: "git@example.com:dots.git", Direction: "push"}},
				Dirty:    true,
				Changed:  []string{"box1/.vimrc"},
				Upstream: "origin/main", UpstreamAvailable: true,
				Ahead: 1,
				CommitsAhead: []types.Commit{
					{Hash: "0123456789abcdef", Date: date, Summary: "mydot: adding box1/.vimrc"},
				},
			},
			contains: []string{
				"no commits",
				"origin git@example.com:dots.git (push)",
				"1 ahead, 0 behind origin/main",
				"0123456 2024-03-02 10:00 mydot: adding box1/.vimrc",
				"Changed",
				"box1/.vimrc",
			},
			excludes: []string{"Nothing to commit"},
		},
		{
			name: "upstream not fetched",
			report: types.StatusReport{
				Root: "/srv/dots", Host: "box1", Branch: "main",
				Upstream: "origin/main",
			},
			contains: []string{"/srv/dots", "Upstream origin/main not available"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Status(&tt.report)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestAddAndRemove(t *testing.T) {
	r := NewRenderer(nil, "/home/u")

	assert.Contains(t, r.Add(&types.AddResult{
		Source: "/home/u/.vimrc", Destination: "/home/u/.dotfiles/box1/.vimrc",
	}), "Added ~/.vimrc (now ~/.dotfiles/box1/.vimrc)")
	assert.Contains(t, r.Add(&types.AddResult{
		Source: "/home/u/.vimrc", Destination: "/home/u/.dotfiles/box1/.vimrc", DryRun: true,
	}), "Would move ~/.vimrc")

	assert.Contains(t, r.Remove(&types.RemoveResult{
		Target: "/home/u/.dotfiles/box1/.vimrc", HomePath: "/home/u/.vimrc",
	}), "Restored ~/.vimrc")
	assert.Contains(t, r.Remove(&types.RemoveResult{
		Target: "/home/u/.dotfiles/box1/.vimrc", HomePath: "/home/u/.vimrc", DryRun: true,
	}), "Would restore ~/.vimrc")
}

func TestHosts(t *testing.T) {
	r := NewRenderer(nil, "")

	out := r.Hosts(&types.HostList{
		Current:    "box1",
		Hosts:      []string{"box1", "laptop"},
		Registered: []string{"box1", "server"},
	})
	assert.Contains(t, out, "* box1\n")
	assert.Contains(t, out, "laptop (not registered)")
	assert.Contains(t, out, "server (no files)")

	assert.Contains(t, r.Hosts(&types.HostList{}), "No hosts")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "")

	require.NoError(t, r.RenderError(errors.New(errors.ErrAlreadyManaged, "~/.vimrc is already managed")))
	assert.Contains(t, buf.String(), "Error: ~/.vimrc is already managed")
	assert.NotContains(t, buf.String(), "ALREADY_MANAGED")
}
