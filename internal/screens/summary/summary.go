package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wifeymooc/quizkit/internal/router"
	"github.com/wifeymooc/quizkit/internal/screen"
	"github.com/wifeymooc/quizkit/internal/session"
	"github.com/wifeymooc/quizkit/internal/ui/components"
	"github.com/wifeymooc/quizkit/internal/ui/layout"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

// SummaryScreen displays the end-of-session tally.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render("Session complete")))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Dim.Render(fmt.Sprintf("%s  ·  %d:%02d", sum.Bank, mins, secs))))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body.Render(fmt.Sprintf(
		"Blocks checked: %d    Correct: %d    Accuracy: %.0f%%",
		sum.Checked, sum.Correct, sum.Accuracy*100))))
	b.WriteString("\n\n")

	if len(sum.Kinds) == 0 {
		return b.String()
	}

	barWidth := min(width-8, 60)
	b.WriteString(center(theme.Dim.Render("By question type")))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))))
	b.WriteString("\n")

	labelWidth := 0
	for _, k := range sum.Kinds {
		labelWidth = max(labelWidth, lipgloss.Width(k.Kind.DisplayName()))
	}
	for _, k := range sum.Kinds {
		label := fmt.Sprintf("%-*s %2d/%-2d", labelWidth, k.Kind.DisplayName(), k.Correct, k.Attempts)
		bar := components.NewProgressBar(label, k.Correct, k.Attempts, barWidth)
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}
