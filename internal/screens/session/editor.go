package session

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
	"github.com/wifeymooc/quizkit/internal/ui/components"
)

// editor turns key presses into response state edits for one gradable
// question. Every kind is laid out as rows with a cursor: choice kinds are
// an option list, blanks are text inputs, mappings and dropdowns cycle
// their choices with left/right, phrases are reordered in place.
type editor struct {
	key   string
	q     question.Question
	state *response.State

	list   components.ChoiceList
	inputs []components.TextInput
	row    int
}

func newEditor(key string, q question.Question, state *response.State) *editor {
	e := &editor{key: key, q: q, state: state}
	switch b := q.Body.(type) {
	case *question.ListPick:
		e.list = components.NewChoiceList(labels(b.Options), true)
	case *question.MCQMultiple:
		e.list = components.NewChoiceList(labels(b.Options), true)
	case *question.MCQSingle:
		e.list = components.NewChoiceList(labels(b.Options), false)
	case *question.Categorization:
		e.list = components.NewChoiceList(b.Categories, false)
	case *question.WordFill:
		for i := range b.Blanks() {
			e.inputs = append(e.inputs, components.NewTextInput(fmt.Sprintf("blank %d", i+1), entry(state.Entries, i), 64))
		}
	case *question.ImageTagging:
		e.resetTagInputs()
	}
	return e
}

// rows returns the number of cursor positions.
func (e *editor) rows() int {
	switch b := e.q.Body.(type) {
	case *question.ListPick, *question.MCQMultiple, *question.MCQSingle, *question.Categorization:
		return len(e.list.Options)
	case *question.WordFill:
		return len(e.inputs)
	case *question.FillBlanksDropdown:
		return b.Blanks()
	case *question.MatchSentence:
		return len(b.Pairs)
	case *question.CategorizationMultiple:
		return len(b.Stimuli)
	case *question.MatchPhrases:
		return len(b.Pairs)
	case *question.SequenceAudio:
		return len(b.AudioOptions)
	case *question.OrderPhrase:
		return len(e.state.Order)
	case *question.ImageTagging:
		return e.tagRowOffset() + len(e.inputs)
	}
	return 0
}

// editable reports whether the question takes input in the terminal.
func (e *editor) editable() bool {
	return e.rows() > 0
}

// focus gives keyboard focus to the text input under the cursor, if any.
func (e *editor) focus() tea.Cmd {
	e.blur()
	if i, ok := e.inputIndex(); ok {
		return e.inputs[i].Focus()
	}
	return nil
}

func (e *editor) blur() {
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
}

// inputIndex maps the cursor row to a text input.
func (e *editor) inputIndex() (int, bool) {
	i := e.row
	if _, ok := e.q.Body.(*question.ImageTagging); ok {
		i -= e.tagRowOffset()
	}
	if i < 0 || i >= len(e.inputs) {
		return 0, false
	}
	return i, true
}

// Update applies one message to the response state.
func (e *editor) Update(msg tea.Msg) tea.Cmd {
	if !e.editable() {
		return nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e.updateInput(msg)
	}
	key := kmsg.String()

	switch key {
	case "up":
		return e.move(-1)
	case "down":
		return e.move(1)
	}

	switch b := e.q.Body.(type) {
	case *question.ListPick, *question.MCQMultiple:
		e.list, _ = e.list.Update(msg)
		e.row = e.list.Cursor
		if isToggle(key) {
			e.state.Toggle(e.list.Cursor)
		}
	case *question.MCQSingle:
		e.list, _ = e.list.Update(msg)
		e.row = e.list.Cursor
		if isToggle(key) {
			e.state.Select(e.list.Cursor)
		}
	case *question.Categorization:
		e.list, _ = e.list.Update(msg)
		e.row = e.list.Cursor
		if isToggle(key) {
			e.state.SetCategory(b.Categories[e.list.Cursor])
		}
	case *question.FillBlanksDropdown:
		e.cycleSelection(key, b.OptionsForBlanks[e.row])
	case *question.MatchSentence:
		e.cycleSelection(key, b.Choices(e.row))
	case *question.CategorizationMultiple:
		e.cycleSelection(key, b.Categories)
	case *question.MatchPhrases:
		e.cycleSelection(key, b.Pairs[e.row].Targets)
	case *question.SequenceAudio:
		if d := delta(key); d != 0 {
			n := len(b.AudioOptions) + 1
			next := ((entryInt(e.state.Orders, e.row)+d)%n + n) % n
			_ = e.state.SetSequence(e.row, next)
		}
	case *question.OrderPhrase:
		switch key {
		case "shift+up", "[":
			if e.row > 0 {
				e.state.MoveUp(e.row)
				e.row--
			}
		case "shift+down", "]":
			if e.row < len(e.state.Order)-1 {
				e.state.MoveDown(e.row)
				e.row++
			}
		}
	case *question.WordFill:
		return e.updateInput(msg)
	case *question.ImageTagging:
		if e.row < e.tagRowOffset() {
			if d := delta(key); d != 0 {
				n := b.ViewCount()
				e.state.SetAlternative(((e.state.Alternative+d)%n + n) % n)
				e.resetTagInputs()
			}
			return nil
		}
		return e.updateInput(msg)
	}
	return nil
}

func (e *editor) move(d int) tea.Cmd {
	n := e.rows()
	if n == 0 {
		return nil
	}
	e.row = min(max(e.row+d, 0), n-1)
	e.list.Cursor = min(e.row, max(len(e.list.Options)-1, 0))
	return e.focus()
}

// updateInput forwards msg to the focused text input and stores its value.
func (e *editor) updateInput(msg tea.Msg) tea.Cmd {
	i, ok := e.inputIndex()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	e.inputs[i], cmd = e.inputs[i].Update(msg)
	value := e.inputs[i].Value()

	switch b := e.q.Body.(type) {
	case *question.WordFill:
		_ = e.state.SetEntry(i, value)
	case *question.ImageTagging:
		view := b.View(e.state.Alternative, e.q.Media.Image)
		if p, ok := parsePoint(value); ok && i < len(view.Tags) {
			e.state.SetTagPosition(e.state.Alternative, view.Tags[i].ID, p)
		}
	}
	return cmd
}

func (e *editor) cycleSelection(key string, choices []string) {
	d := delta(key)
	if d == 0 || len(choices) == 0 {
		return
	}
	current := entry(e.state.Selections, e.row)
	idx := -1
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && d > 0:
		next = 0
	case idx < 0:
		next = len(choices) - 1
	default:
		next = ((idx+d)%len(choices) + len(choices)) % len(choices)
	}
	_ = e.state.SetSelection(e.row, choices[next])
}

// tagRowOffset is 1 when the image_tagging question has a view selector
// row above its tags.
func (e *editor) tagRowOffset() int {
	if b, ok := e.q.Body.(*question.ImageTagging); ok && len(b.Alternatives) > 0 {
		return 1
	}
	return 0
}

// resetTagInputs rebuilds one "x,y" input per tag of the active view,
// prefilled with positions already placed there.
func (e *editor) resetTagInputs() {
	b := e.q.Body.(*question.ImageTagging)
	view := b.View(e.state.Alternative, e.q.Media.Image)
	e.inputs = e.inputs[:0]
	for _, tag := range view.Tags {
		value := ""
		if p, ok := e.state.TagPosition(e.state.Alternative, tag.ID); ok {
			value = formatPoint(p)
		}
		e.inputs = append(e.inputs, components.NewTextInput("x,y", value, 24))
	}
}

func labels(opts []question.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label()
	}
	return out
}

func isToggle(key string) bool {
	return key == "space" || key == " " || key == "x"
}

func delta(key string) int {
	switch key {
	case "right", "l":
		return 1
	case "left", "h":
		return -1
	}
	return 0
}

func entry(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func entryInt(s []int, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// parsePoint reads "x,y" (or "x y") image coordinates.
func parsePoint(s string) (question.Point, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 2 {
		return question.Point{}, false
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return question.Point{}, false
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return question.Point{}, false
	}
	return question.Point{X: x, Y: y}, true
}

func formatPoint(p question.Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}
