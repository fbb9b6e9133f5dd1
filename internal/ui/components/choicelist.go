package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

// ChoiceList is a vertical option list with a cursor. It holds no
// selection of its own: callers pass the marked rows when rendering, so
// the selection can live in the response state.
type ChoiceList struct {
	Options []string
	Cursor  int

	// Multi renders checkboxes instead of radio buttons.
	Multi bool
}

// NewChoiceList creates a list with the cursor on the first option.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{Options: options, Multi: multi}
}

// Update moves the cursor on up/down (or k/j) and digit keys.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Cursor = i
			}
		}
	}
	return c, nil
}

// View renders the options. marked reports whether option i is selected;
// focused controls whether the cursor is drawn.
func (c ChoiceList) View(marked func(int) bool, focused bool) string {
	var b strings.Builder
	for i, opt := range c.Options {
		box := "( )"
		if c.Multi {
			box = "[ ]"
		}
		if marked != nil && marked(i) {
			box = "(•)"
			if c.Multi {
				box = "[x]"
			}
		}

		prefix := "  "
		if focused && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, box, i+1, opt)

		if focused && i == c.Cursor {
			b.WriteString(theme.Cursor.Render(line))
		} else {
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
