package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns the raw content of a topic into terminal output. ext is
// the topic file extension, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics as written
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, ext string) string {
	return content
}

// MarkdownRenderer renders .md topics with glamour. Other topics, and any
// content glamour fails on, are printed as written.
type MarkdownRenderer struct {
	// Style is a glamour style name or path. Empty means auto-detect.
	Style string
	// Width wraps output at this column when positive
	Width int
}

// NewMarkdownRenderer picks the glamour style for the output: auto-detected
// when styled, "notty" otherwise so piped help stays free of escape codes.
func NewMarkdownRenderer(styled bool) *MarkdownRenderer {
	if styled {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{Style: "notty"}
}

func (r *MarkdownRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style == "" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
