package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Incomplete = lipgloss.NewStyle().
			Foreground(Warning)

	Ungradable = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// Verdict returns the style for a grading status name ("correct",
// "incorrect", "incomplete", "ungradable").
func Verdict(status string) lipgloss.Style {
	switch status {
	case "correct":
		return Correct
	case "incorrect":
		return Incorrect
	case "incomplete":
		return Incomplete
	default:
		return Ungradable
	}
}

// Mark is the one-glyph verdict marker used in lists and headers.
func Mark(status string) string {
	switch status {
	case "correct":
		return Correct.Render("✓")
	case "incorrect":
		return Incorrect.Render("✗")
	case "incomplete":
		return Incomplete.Render("…")
	default:
		return Ungradable.Render("-")
	}
}
