// Package style renders mydot results for humans: lipgloss styles for text,
// pterm for tables and status badges.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color has a light and a dark terminal variant.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#1F6FB2", Dark: "#5FAFFF"}
	good    = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	bad     = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	caution = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFCA28"}
	heading = lipgloss.AdaptiveColor{Light: "#202020", Dark: "#EEEEEE"}
	subtle  = lipgloss.AdaptiveColor{Light: "#707070", Dark: "#A8A8A8"}
)

var (
	TitleStyle   = lipgloss.NewStyle().Foreground(heading).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(subtle)
	SuccessStyle = lipgloss.NewStyle().Foreground(good).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(bad).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(caution).Bold(true)
	PathStyle    = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	BranchStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
)

// Marks prefixed to per-file lines
const (
	SuccessMark = "✓"
	ErrorMark   = "✗"
	WarningMark = "!"
	InfoMark    = "•"
	PendingMark = "○"
)
