package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/types"
)

// Renderer writes results as styled text. Whether colors are emitted is
// decided by the lipgloss and pterm global settings, see ui.NewRenderer.
type Renderer struct {
	w    io.Writer
	home string
}

// NewRenderer creates a text renderer. home is used to shorten paths to ~/...
func NewRenderer(w io.Writer, home string) *Renderer {
	return &Renderer{w: w, home: home}
}

// RenderResult renders any of the mydot result types
func (r *Renderer) RenderResult(result interface{}) error {
	var (
		out string
		err error
	)
	switch v := result.(type) {
	case *types.Inventory:
		out, err = r.Inventory(v)
	case *types.SyncReport:
		out, err = r.Sync(v)
	case *types.StatusReport:
		out, err = r.Status(v)
	case *types.AddResult:
		out = r.Add(v)
	case *types.RemoveResult:
		out = r.Remove(v)
	case *types.HostList:
		out = r.Hosts(v)
	case string:
		out = v
	default:
		out = fmt.Sprintf("%v", v)
	}
	if err != nil {
		return err
	}
	return r.write(out)
}

// RenderError writes err without its error code
func (r *Renderer) RenderError(err error) error {
	return r.write(ErrorStyle.Render(ErrorMark+" Error:") + " " + errors.Describe(err))
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg)
}

func (r *Renderer) write(s string) error {
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(r.w, s)
	return err
}

func (r *Renderer) display(path string) string {
	if r.home == "" {
		return path
	}
	if rel, ok := paths.RelativeTo(r.home, path); ok {
		return "~/" + rel
	}
	return path
}

// Inventory renders the classified files of a host as a table
func (r *Renderer) Inventory(inv *types.Inventory) (string, error) {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Host "+inv.Host) + "\n")
	if len(inv.Files) == 0 {
		b.WriteString(MutedStyle.Render("  no files managed for this host") + "\n")
		return b.String(), nil
	}
	table, err := r.fileTable(inv.Files)
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	return b.String(), nil
}

func (r *Renderer) fileTable(files []types.ManagedFile) (string, error) {
	data := pterm.TableData{{"STATUS", "FILE", "DETAIL"}}
	for _, f := range files {
		data = append(data, []string{
			StatusStyle(f.Status).Sprint(f.Status.String()),
			r.display(f.HomePath()),
			r.detail(f),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func (r *Renderer) detail(f types.ManagedFile) string {
	switch f.Status {
	case types.StatusInSync:
		return ""
	case types.StatusLinkWrongTarget:
		return "points to " + f.LinkTarget
	default:
		return f.Status.Description()
	}
}

// Sync renders one line per file followed by a summary
func (r *Renderer) Sync(report *types.SyncReport) (string, error) {
	var b strings.Builder
	title := "Syncing host " + report.Host
	if report.DryRun {
		title += " (dry run)"
	}
	b.WriteString(TitleStyle.Render(title) + "\n")

	for _, res := range report.Results {
		mark, st := OutcomeMark(res.Outcome)
		line := fmt.Sprintf("  %s %s", st.Sprint(mark), r.display(res.File.HomePath()))
		if res.Message != "" {
			line += MutedStyle.Render(" " + res.Message)
		}
		b.WriteString(line + "\n")
	}

	parts := []string{
		fmt.Sprintf("%d linked", report.Count(types.OutcomeLinked)+report.Count(types.OutcomeWouldLink)),
		fmt.Sprintf("%d unchanged", report.Count(types.OutcomeUnchanged)),
	}
	if n := report.Count(types.OutcomeNeedsResolution); n > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d need resolution", n)))
	}
	if n := report.Count(types.OutcomeFailed); n > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	b.WriteString("\n" + strings.Join(parts, ", ") + "\n")
	return b.String(), nil
}

// Status renders the repository state and the host inventory
func (r *Renderer) Status(s *types.StatusReport) (string, error) {
	var b strings.Builder

	head := s.Head
	if head == "" {
		head = "no commits"
	}
	b.WriteString(fmt.Sprintf("%s %s on %s (%s)\n",
		TitleStyle.Render("Repository"),
		PathStyle.Render(r.display(s.Root)),
		BranchStyle.Render(s.Branch),
		head))
	b.WriteString(fmt.Sprintf("%s %s\n", TitleStyle.Render("Host"), s.Host))

	if len(s.Remotes) > 0 {
		b.WriteString(TitleStyle.Render("Remotes") + "\n")
		for _, rem := range s.Remotes {
			b.WriteString(fmt.Sprintf("  %s %s (%s)\n", rem.Name, rem.URL, rem.Direction))
		}
	}

	switch {
	case s.Upstream == "":
	case !s.UpstreamAvailable:
		b.WriteString(MutedStyle.Render(fmt.Sprintf("Upstream %s not available, run mydot pull", s.Upstream)) + "\n")
	case s.Ahead == 0 && s.Behind == 0:
		b.WriteString(SuccessStyle.Render(SuccessMark) + fmt.Sprintf(" Up to date with %s\n", s.Upstream))
	default:
		b.WriteString(WarningStyle.Render(WarningMark) +
			fmt.Sprintf(" %d ahead, %d behind %s\n", s.Ahead, s.Behind, s.Upstream))
		for _, c := range s.CommitsAhead {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				MutedStyle.Render(shortHash(c.Hash)),
				MutedStyle.Render(c.Date.Format("2006-01-02 15:04")),
				c.Summary))
		}
	}

	writeList(&b, "Changed", s.Changed)
	writeList(&b, "Staged", s.Staged)
	writeList(&b, "Untracked", s.Untracked)
	if s.Clean() {
		b.WriteString(SuccessStyle.Render(SuccessMark) + " Nothing to commit\n")
	}

	b.WriteString("\n")
	inv, err := r.Inventory(&types.Inventory{Host: s.Host, Files: s.Files})
	if err != nil {
		return "", err
	}
	b.WriteString(inv)
	return b.String(), nil
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(TitleStyle.Render(title) + "\n")
	for _, item := range items {
		b.WriteString("  " + PathStyle.Render(item) + "\n")
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func (r *Renderer) Add(res *types.AddResult) string {
	if res.DryRun {
		return fmt.Sprintf("%s Would move %s to %s and link it back",
			PendingMark, r.display(res.Source), r.display(res.Destination))
	}
	return fmt.Sprintf("%s Added %s (now %s)",
		SuccessStyle.Render(SuccessMark), r.display(res.Source), r.display(res.Destination))
}

func (r *Renderer) Remove(res *types.RemoveResult) string {
	if res.DryRun {
		return fmt.Sprintf("%s Would restore %s and drop %s",
			PendingMark, r.display(res.HomePath), r.display(res.Target))
	}
	return fmt.Sprintf("%s Restored %s, no longer managed",
		SuccessStyle.Render(SuccessMark), r.display(res.HomePath))
}

func (r *Renderer) Hosts(list *types.HostList) string {
	if len(list.Hosts) == 0 && len(list.Registered) == 0 {
		return MutedStyle.Render("No hosts in this repository")
	}
	registered := make(map[string]bool, len(list.Registered))
	for _, h := range list.Registered {
		registered[h] = true
	}
	seen := make(map[string]bool, len(list.Hosts))

	var b strings.Builder
	line := func(h string) {
		mark := "  "
		if h == list.Current {
			mark = "* "
		}
		note := ""
		if !registered[h] {
			note = MutedStyle.Render(" (not registered)")
		} else if !seen[h] {
			note = MutedStyle.Render(" (no files)")
		}
		b.WriteString(mark + h + note + "\n")
	}
	for _, h := range list.Hosts {
		seen[h] = true
		line(h)
	}
	for _, h := range list.Registered {
		if !seen[h] {
			line(h)
		}
	}
	return b.String()
}
