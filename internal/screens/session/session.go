// Package session is the interactive player screen: it walks a bank block
// by block, edits response state from the keyboard and grades on demand.
package session

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/wifeymooc/quizkit/internal/grading"
	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
	"github.com/wifeymooc/quizkit/internal/router"
	"github.com/wifeymooc/quizkit/internal/screen"
	"github.com/wifeymooc/quizkit/internal/screens/summary"
	sess "github.com/wifeymooc/quizkit/internal/session"
	"github.com/wifeymooc/quizkit/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a practice pass over a bank.
type SessionScreen struct {
	session  *sess.Session
	bank     *question.Bank
	mediaDir string

	block   int
	reg     response.Registry
	editors []*editor
	focused int

	// checked holds the last result of the current block, nil until the
	// learner checks it.
	checked  *checkResult
	statuses map[int]grading.Status

	showingQuitConfirm bool
	ending             bool
	warning            string
}

type checkResult struct {
	verdict grading.Verdict
	results map[string]grading.Result
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates the player for bank. The session should already be
// started. mediaDir is the base directory shown for relative media paths.
func New(s *sess.Session, bank *question.Bank, mediaDir string) *SessionScreen {
	p := &SessionScreen{
		session:  s,
		bank:     bank,
		mediaDir: mediaDir,
		statuses: make(map[int]grading.Status),
	}
	p.loadBlock(0)
	return p
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.focusEditor()
}

func (s *SessionScreen) Title() string {
	if s.bank.Len() == 0 {
		return "Empty bank"
	}
	return s.bank.Questions[s.block].Kind().DisplayName()
}

// Status is the block counter and score shown in the header.
func (s *SessionScreen) Status() string {
	sum := s.session.Summary()
	return fmt.Sprintf("Block %d/%d  ✓ %d", s.block+1, max(s.bank.Len(), 1), sum.Correct)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Check"},
		{Key: "PgUp/PgDn", Description: "Block"},
	}
	if len(s.editors) > 1 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next question"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
}

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, s.session.Summary())
	}
	return s.renderBlock(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEndMsg:
		if s.ending {
			return s, nil
		}
		s.ending = true
		return s, s.endSession()

	case sessionEndedMsg:
		if msg.Err != nil {
			s.warning = msg.Err.Error()
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(msg.Summary)}
		}

	case tea.KeyMsg:
		if s.ending {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if e := s.activeEditor(); e != nil {
		return s, e.Update(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		s.check()
		return s, nil
	case "pgdown", "ctrl+n":
		if s.block+1 < s.bank.Len() {
			s.loadBlock(s.block + 1)
			return s, s.focusEditor()
		}
		s.showingQuitConfirm = true
		return s, nil
	case "pgup", "ctrl+p":
		if s.block > 0 {
			s.loadBlock(s.block - 1)
			return s, s.focusEditor()
		}
		return s, nil
	case "tab":
		return s, s.cycleFocus(1)
	case "shift+tab":
		return s, s.cycleFocus(-1)
	}

	if e := s.activeEditor(); e != nil {
		cmd := e.Update(msg)
		return s, cmd
	}
	return s, nil
}

// loadBlock renders block i with fresh response state. Responses are not
// carried across blocks.
func (s *SessionScreen) loadBlock(i int) {
	s.block = i
	s.checked = nil
	s.focused = 0
	s.editors = nil
	if s.bank.Len() == 0 {
		s.reg = response.Registry{}
		return
	}

	q := s.bank.Questions[i]
	s.reg = response.NewRegistry(i, q)
	if mq, ok := q.Body.(*question.MultiQuestions); ok {
		for j, sub := range mq.Questions {
			key := response.InnerKey(i, j)
			s.editors = append(s.editors, newEditor(key, sub, s.reg.State(key)))
		}
		return
	}
	key := response.BlockKey(i)
	s.editors = []*editor{newEditor(key, q, s.reg.State(key))}
}

// check grades the current block and records the result in the session.
func (s *SessionScreen) check() {
	if s.bank.Len() == 0 {
		return
	}
	v, results, err := s.session.Check(context.Background(), s.block, s.reg)
	if err != nil {
		s.warning = err.Error()
	} else {
		s.warning = ""
	}

	byKey := make(map[string]grading.Result, len(results))
	for _, r := range results {
		byKey[r.Key] = r
	}
	s.checked = &checkResult{verdict: v, results: byKey}
	s.statuses[s.block] = v.Status
}

func (s *SessionScreen) activeEditor() *editor {
	if s.focused < 0 || s.focused >= len(s.editors) {
		return nil
	}
	return s.editors[s.focused]
}

func (s *SessionScreen) focusEditor() tea.Cmd {
	for _, e := range s.editors {
		e.blur()
	}
	if e := s.activeEditor(); e != nil {
		return e.focus()
	}
	return nil
}

func (s *SessionScreen) cycleFocus(d int) tea.Cmd {
	n := len(s.editors)
	if n < 2 {
		return nil
	}
	s.focused = ((s.focused+d)%n + n) % n
	return s.focusEditor()
}

func (s *SessionScreen) endSession() tea.Cmd {
	return func() tea.Msg {
		sum, err := s.session.End(context.Background())
		return sessionEndedMsg{Summary: sum, Err: err}
	}
}
