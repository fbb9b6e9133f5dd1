package session

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wifeymooc/quizkit/internal/media"
	"github.com/wifeymooc/quizkit/internal/question"
	sess "github.com/wifeymooc/quizkit/internal/session"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

// renderBlock renders the current block: a strip of block statuses, each
// question with its editor, and the last verdict.
func (s *SessionScreen) renderBlock(width int) string {
	if s.bank.Len() == 0 {
		return theme.Dim.Render("\n  This bank has no questions.")
	}

	var b strings.Builder
	b.WriteString(s.renderStrip())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	q := s.bank.Questions[s.block]
	if mq, ok := q.Body.(*question.MultiQuestions); ok {
		if q.Text != "" {
			b.WriteString(theme.Title.Render(q.Text))
			b.WriteString("\n")
		}
		b.WriteString(s.renderMedia(q.Media))
		if len(mq.Questions) == 0 {
			b.WriteString(theme.Dim.Render("This block has no questions."))
			b.WriteString("\n")
		}
		for i, e := range s.editors {
			b.WriteString("\n")
			b.WriteString(s.renderQuestion(e, i == s.focused, fmt.Sprintf("%d. ", i+1)))
		}
	} else if len(s.editors) == 1 {
		b.WriteString(s.renderQuestion(s.editors[0], true, ""))
	}

	b.WriteString("\n")
	b.WriteString(s.renderVerdict())
	if s.warning != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incomplete.Render("warning: " + s.warning))
	}
	return b.String()
}

// renderStrip renders one glyph per block: its last verdict, or a dot when
// unchecked. The current block is highlighted.
func (s *SessionScreen) renderStrip() string {
	parts := make([]string, s.bank.Len())
	for i := range parts {
		glyph := theme.Dim.Render("·")
		if st, ok := s.statuses[i]; ok {
			glyph = theme.Mark(string(st))
		}
		if i == s.block {
			glyph = theme.Cursor.Render("[") + glyph + theme.Cursor.Render("]")
		} else {
			glyph = " " + glyph + " "
		}
		parts[i] = glyph
	}
	return "  " + strings.Join(parts, "")
}

func (s *SessionScreen) renderQuestion(e *editor, focused bool, prefix string) string {
	var b strings.Builder

	title := prefix + e.q.Text
	if focused && len(s.editors) > 1 {
		title = "▸ " + title
	}
	mark := ""
	if s.checked != nil {
		if r, ok := s.checked.results[e.key]; ok {
			mark = " " + theme.Mark(string(r.Verdict.Status))
		}
	}
	b.WriteString(theme.Title.Render(title) + mark)
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(e.q.Kind().DisplayName()))
	b.WriteString("\n")
	b.WriteString(s.renderMedia(e.q.Media))
	b.WriteString("\n")
	b.WriteString(e.View(focused))
	return b.String()
}

func (s *SessionScreen) renderMedia(m question.Media) string {
	var b strings.Builder
	line := func(label, p string) {
		if p == "" {
			return
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s %s", label, media.Resolve(p, s.mediaDir))))
		b.WriteString("\n")
	}
	line("♪", m.Audio)
	line("▶", m.Video)
	line("▣", m.Image)
	return b.String()
}

func (s *SessionScreen) renderVerdict() string {
	if s.checked == nil {
		return theme.Hint.Render("Press Enter to check your answer.")
	}
	v := s.checked.verdict
	style := theme.Verdict(string(v.Status))
	switch {
	case v.Correct:
		return style.Render("Correct!")
	case v.Message != "":
		return style.Render(v.Message)
	default:
		return style.Render(string(v.Status))
	}
}

// renderQuitConfirm renders the end-of-session confirmation.
func renderQuitConfirm(width int, sum *sess.Summary) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center(theme.Title.Render("End session?")))
	b.WriteString("\n")
	b.WriteString(center(theme.Dim.Render(fmt.Sprintf("%d blocks checked, %d correct", sum.Checked, sum.Correct))))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Correct.Render("[Y] Yes, show my summary")))
	b.WriteString("\n")
	b.WriteString(center(theme.Cursor.Render("[N] No, keep going")))
	return b.String()
}

// View renders the editor rows for q.
func (e *editor) View(focused bool) string {
	var b strings.Builder
	cursor := func(i int) string {
		if focused && i == e.row {
			return "▸ "
		}
		return "  "
	}
	style := func(i int) lipgloss.Style {
		if focused && i == e.row {
			return theme.Cursor
		}
		return theme.Body
	}
	choice := func(v string) string {
		if v == "" {
			v = "———"
		}
		return "◂ " + v + " ▸"
	}

	switch bd := e.q.Body.(type) {
	case *question.ListPick, *question.MCQMultiple:
		picked := e.state.SelectedIndices()
		b.WriteString(e.list.View(func(i int) bool { return slices.Contains(picked, i) }, focused))
	case *question.MCQSingle:
		sel, ok := e.state.SelectedIndex()
		b.WriteString(e.list.View(func(i int) bool { return ok && i == sel }, focused))
	case *question.Categorization:
		b.WriteString(e.list.View(func(i int) bool { return bd.Categories[i] == e.state.Category }, focused))

	case *question.WordFill:
		b.WriteString(theme.Body.Render(interleave(bd.SentenceParts, e.state.Entries)))
		b.WriteString("\n")
		for i, in := range e.inputs {
			b.WriteString(style(i).Render(fmt.Sprintf("%sBlank %d: ", cursor(i), i+1)) + in.View())
			b.WriteString("\n")
		}

	case *question.FillBlanksDropdown:
		b.WriteString(theme.Body.Render(interleave(bd.SentenceParts, e.state.Selections)))
		b.WriteString("\n")
		for i := range bd.Blanks() {
			b.WriteString(style(i).Render(fmt.Sprintf("%sBlank %d: %s", cursor(i), i+1, choice(entry(e.state.Selections, i)))))
			b.WriteString("\n")
		}

	case *question.MatchSentence:
		for i, p := range bd.Pairs {
			left := p.Sentence
			if p.ImagePath != "" {
				left = "▣ " + p.Key()
			}
			b.WriteString(style(i).Render(fmt.Sprintf("%s%s  →  %s", cursor(i), left, choice(entry(e.state.Selections, i)))))
			b.WriteString("\n")
		}

	case *question.CategorizationMultiple:
		for i, st := range bd.Stimuli {
			left := st.Text
			if left == "" && st.Image != "" {
				left = "▣ " + st.Key()
			}
			b.WriteString(style(i).Render(fmt.Sprintf("%s%s  →  %s", cursor(i), left, choice(entry(e.state.Selections, i)))))
			b.WriteString("\n")
		}

	case *question.MatchPhrases:
		for i, p := range bd.Pairs {
			b.WriteString(style(i).Render(fmt.Sprintf("%s%s …  %s", cursor(i), p.Source, choice(entry(e.state.Selections, i)))))
			b.WriteString("\n")
		}

	case *question.SequenceAudio:
		for i, a := range bd.AudioOptions {
			order := "—"
			if o := entryInt(e.state.Orders, i); o > 0 {
				order = fmt.Sprint(o)
			}
			b.WriteString(style(i).Render(fmt.Sprintf("%s♪ %s  order %s", cursor(i), a, choice(order))))
			b.WriteString("\n")
		}

	case *question.OrderPhrase:
		for i, phrase := range e.state.Order {
			b.WriteString(style(i).Render(fmt.Sprintf("%s%d. %s", cursor(i), i+1, phrase)))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render("Shift+↑/↓ or [ ] moves the selected phrase."))
		b.WriteString("\n")

	case *question.ImageTagging:
		view := bd.View(e.state.Alternative, e.q.Media.Image)
		off := e.tagRowOffset()
		if off > 0 {
			label := "base"
			if e.state.Alternative > 0 {
				label = bd.Alternatives[e.state.Alternative-1].ButtonLabel
				if label == "" {
					label = fmt.Sprintf("alternative %d", e.state.Alternative)
				}
			}
			b.WriteString(style(0).Render(fmt.Sprintf("%sView: %s", cursor(0), choice(label))))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render("▣ " + view.Image))
		b.WriteString("\n")
		for i, in := range e.inputs {
			label := view.Tags[i].Label
			if label == "" {
				label = view.Tags[i].ID
			}
			b.WriteString(style(i+off).Render(fmt.Sprintf("%s%s: ", cursor(i+off), label)) + in.View())
			b.WriteString("\n")
		}

	case *question.MultiQuestions:
		b.WriteString(theme.Ungradable.Render("Nested blocks cannot be answered."))
		b.WriteString("\n")
	default:
		b.WriteString(theme.Ungradable.Render("This question type cannot be answered here."))
		b.WriteString("\n")
	}
	return b.String()
}

// interleave renders sentence parts with the current blank values.
func interleave(parts, values []string) string {
	var b strings.Builder
	for i, p := range parts {
		b.WriteString(p)
		if i < len(parts)-1 {
			v := entry(values, i)
			if strings.TrimSpace(v) == "" {
				v = "____"
			}
			b.WriteString("[" + v + "]")
		}
	}
	return b.String()
}
