package session

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wifeymooc/quizkit/internal/grading"
	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
	"github.com/wifeymooc/quizkit/internal/router"
	sess "github.com/wifeymooc/quizkit/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func testBank() *question.Bank {
	return &question.Bank{Questions: []question.Question{
		{
			Text: "Pick the fruit",
			Body: &question.MCQSingle{
				Options: []question.Option{{Text: "Carrot"}, {Text: "Apple"}},
				Answer:  []int{1},
			},
		},
		{
			Text: "Block",
			Body: &question.MultiQuestions{Questions: []question.Question{
				{Text: "Fill it", Body: &question.WordFill{SentenceParts: []string{"le ", " rouge"}, Answers: []string{"chat"}}},
				{Text: "Order it", Body: &question.OrderPhrase{PhraseShuffled: []string{"monde", "bonjour"}, Answer: []string{"bonjour", "monde"}}},
			}},
		},
		{
			Text: "Match",
			Body: &question.FillBlanksDropdown{
				SentenceParts:    []string{"Je ", " content."},
				OptionsForBlanks: [][]string{{"suis", "es"}},
				Answers:          []string{"es"},
			},
		},
	}}
}

func testSessionScreen() *SessionScreen {
	s := New(sess.New(testBank(), nil), testBank(), ".")
	s.Init()
	return s
}

func TestSessionScreen_TitleAndStatus(t *testing.T) {
	s := testSessionScreen()
	if s.Title() != "Single Choice" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.Status() != "Block 1/3  ✓ 0" {
		t.Errorf("Status = %q", s.Status())
	}
}

func TestSessionScreen_SingleChoice(t *testing.T) {
	s := testSessionScreen()

	s.Update(specialKey(tea.KeyEnter))
	if s.checked == nil || s.checked.verdict.Status != grading.StatusIncomplete {
		t.Fatalf("empty check = %+v", s.checked)
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeySpace))
	s.Update(specialKey(tea.KeyEnter))
	if !s.checked.verdict.Correct {
		t.Fatalf("verdict = %+v", s.checked.verdict)
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("expected Correct! in view")
	}
	if s.Status() != "Block 1/3  ✓ 1" {
		t.Errorf("Status = %q", s.Status())
	}
}

func TestSessionScreen_CompositeBlock(t *testing.T) {
	s := testSessionScreen()
	s.Update(specialKey(tea.KeyPgDown))
	if s.block != 1 || len(s.editors) != 2 {
		t.Fatalf("block %d with %d editors", s.block, len(s.editors))
	}

	typeText(s, "chat")
	if got := s.reg.State(response.InnerKey(1, 0)).Entries[0]; got != "chat" {
		t.Fatalf("entry = %q", got)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.checked.verdict.Correct || s.checked.verdict.Message != "Phrase order incorrect." {
		t.Fatalf("verdict = %+v", s.checked.verdict)
	}

	// Focus the phrases, select the second and move it up.
	s.Update(specialKey(tea.KeyTab))
	if s.focused != 1 {
		t.Fatalf("focused = %d", s.focused)
	}
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('['))
	if got := s.reg.State(response.InnerKey(1, 1)).Order; got[0] != "bonjour" {
		t.Fatalf("order = %v", got)
	}

	s.Update(specialKey(tea.KeyEnter))
	if !s.checked.verdict.Correct {
		t.Fatalf("verdict = %+v", s.checked.verdict)
	}
	if len(s.checked.results) != 2 {
		t.Errorf("results = %d", len(s.checked.results))
	}
}

func TestSessionScreen_DropdownCycles(t *testing.T) {
	s := testSessionScreen()
	s.Update(specialKey(tea.KeyPgDown))
	s.Update(specialKey(tea.KeyPgDown))

	s.Update(specialKey(tea.KeyRight))
	if got := s.reg.State(response.BlockKey(2)).Selections[0]; got != "suis" {
		t.Fatalf("selection = %q", got)
	}
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyEnter))
	if !s.checked.verdict.Correct {
		t.Fatalf("verdict = %+v", s.checked.verdict)
	}
}

func TestSessionScreen_BlockChangeResetsResponses(t *testing.T) {
	s := testSessionScreen()
	s.Update(specialKey(tea.KeySpace))
	s.Update(specialKey(tea.KeyPgDown))
	s.Update(specialKey(tea.KeyPgUp))

	if _, ok := s.reg.State(response.BlockKey(0)).SelectedIndex(); ok {
		t.Error("expected fresh state after returning to the block")
	}
	if s.checked != nil {
		t.Error("expected verdict cleared")
	}
}

func TestSessionScreen_QuitConfirmEndsSession(t *testing.T) {
	s := testSessionScreen()

	s.Update(specialKey(tea.KeyEscape))
	if !s.showingQuitConfirm {
		t.Fatal("expected quit confirmation")
	}
	s.Update(keyPress('n'))
	if s.showingQuitConfirm {
		t.Fatal("expected confirmation dismissed")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected end cmd")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil || !s.ending {
		t.Fatal("expected session ending")
	}
	msg := cmd()
	ended, ok := msg.(sessionEndedMsg)
	if !ok || ended.Summary == nil {
		t.Fatalf("expected sessionEndedMsg, got %T", msg)
	}

	_, cmd = s.Update(ended)
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg")
	}
}

func TestSessionScreen_LastBlockAsksToFinish(t *testing.T) {
	s := testSessionScreen()
	for range 3 {
		s.Update(specialKey(tea.KeyPgDown))
	}
	if s.block != 2 || !s.showingQuitConfirm {
		t.Errorf("block %d, confirm %v", s.block, s.showingQuitConfirm)
	}
}

func TestEditor_ImageTagging(t *testing.T) {
	q := question.Question{
		Text:  "Tag it",
		Media: question.Media{Image: "map.png"},
		Body: &question.ImageTagging{
			Tags:   []question.Tag{{ID: "a", Label: "Paris"}},
			Answer: map[string]question.Point{"a": {X: 10, Y: 20}},
			Alternatives: []question.TaggingAlternative{
				{Image: "alt.png", Tags: []question.Tag{{ID: "b", Label: "Lyon"}}, Answer: map[string]question.Point{"b": {X: 1, Y: 1}}},
			},
		},
	}
	state := response.NewState(q)
	e := newEditor("0", q, state)
	if e.rows() != 2 {
		t.Fatalf("rows = %d", e.rows())
	}

	e.Update(specialKey(tea.KeyRight))
	if state.Alternative != 1 {
		t.Fatalf("alternative = %d", state.Alternative)
	}
	e.Update(specialKey(tea.KeyLeft))

	e.Update(specialKey(tea.KeyDown))
	for _, r := range "10,20" {
		e.Update(keyPress(r))
	}
	if p, ok := state.TagPosition(0, "a"); !ok || p != (question.Point{X: 10, Y: 20}) {
		t.Fatalf("tag position = %+v, %v", p, ok)
	}
	if v := grading.Evaluate(q, state); !v.Correct {
		t.Errorf("verdict = %+v", v)
	}
}

func TestEditor_SequenceAudio(t *testing.T) {
	q := question.Question{Body: &question.SequenceAudio{AudioOptions: []string{"a.mp3", "b.mp3"}, Answer: []int{1, 0}}}
	state := response.NewState(q)
	e := newEditor("0", q, state)

	e.Update(specialKey(tea.KeyRight))
	e.Update(specialKey(tea.KeyRight))
	e.Update(specialKey(tea.KeyDown))
	e.Update(specialKey(tea.KeyRight))
	if state.Orders[0] != 2 || state.Orders[1] != 1 {
		t.Fatalf("orders = %v", state.Orders)
	}

	// Wraps back to unset.
	e.Update(specialKey(tea.KeyRight))
	e.Update(specialKey(tea.KeyRight))
	if state.Orders[1] != 0 {
		t.Errorf("orders = %v", state.Orders)
	}
}

func TestEditor_UnknownIsReadOnly(t *testing.T) {
	q := question.Question{Text: "?", Body: &question.Unknown{TypeName: "drawing"}}
	e := newEditor("0", q, response.NewState(q))
	if e.editable() {
		t.Error("unknown question should not be editable")
	}
	if cmd := e.Update(specialKey(tea.KeyDown)); cmd != nil {
		t.Error("expected nil cmd")
	}
	if !strings.Contains(e.View(true), "cannot be answered") {
		t.Error("expected read-only notice")
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		want question.Point
		ok   bool
	}{
		{"10,20", question.Point{X: 10, Y: 20}, true},
		{"1.5 2", question.Point{X: 1.5, Y: 2}, true},
		{"10", question.Point{}, false},
		{"a,b", question.Point{}, false},
	}
	for _, tt := range tests {
		got, ok := parsePoint(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePoint(%q) = %+v, %v", tt.in, got, ok)
		}
	}
}
