// Package screen defines the contract between the terminal app shell and
// the screens it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/wifeymooc/quizkit/internal/ui/layout"
)

// Screen is one full-frame view of the app.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen fill the right side of the header, for
// example a block counter.
type StatusProvider interface {
	Status() string
}
