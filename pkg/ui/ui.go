// Package ui selects how command results reach the user: styled terminal
// output, plain text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/style"
	"github.com/arthur-debert/mydot/pkg/ui/json"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders any result type (inventories, reports, add/remove results)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto. home shortens
// displayed paths to ~/... and may be empty.
func NewRenderer(format Format, output io.Writer, home string) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, home)
		}
		return NewRenderer(FormatText, output, home)
	case FormatTerminal:
		lipgloss.SetColorProfile(termenv.NewOutput(output).EnvColorProfile())
		pterm.EnableStyling()
		return style.NewRenderer(output, home), nil
	case FormatText:
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
		return style.NewRenderer(output, home), nil
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
