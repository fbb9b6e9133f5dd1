package grading

import (
	"math"
	"slices"
	"strings"

	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
)

// Tolerance is the largest distance, in image units, between a placed tag
// and its expected position that still counts as correct.
const Tolerance = 50.0

const (
	msgNoResponse        = "No response recorded."
	msgSelectAnswer      = "Please select an answer."
	msgSelectAtLeastOne  = "Please select at least one option."
	msgIncorrect         = "Incorrect."
	msgIncorrectSelect   = "Incorrect selection."
	msgSomeAnswers       = "Some answers are incorrect."
	msgIncorrectMatching = "Incorrect matching."
	msgIncorrectCategory = "Incorrect category."
	msgSomeCategories    = "One or more incorrect."
	msgCompleteSequence  = "Please complete the sequence."
	msgIncorrectSequence = "Incorrect sequence."
	msgPhraseOrder       = "Phrase order incorrect."
	msgSomeBlanks        = "Some blanks incorrect."
	msgTagPositions      = "Tags not in correct positions."
	msgUnknownType       = "Unknown type."
	msgUseCheck          = "multi_questions blocks are graded with Check."
)

// Evaluate grades a flat question against the response exposed by a. It
// never panics on malformed questions or short responses: missing entries
// count as wrong. Composite blocks are ungradable here; use Check.
func Evaluate(q question.Question, a response.Adapter) Verdict {
	switch q.Body.(type) {
	case *question.Unknown, nil:
		return ungradable(msgUnknownType)
	case *question.MultiQuestions:
		return ungradable(msgUseCheck)
	}
	if a == nil {
		return incomplete(nil, msgNoResponse)
	}

	switch b := q.Body.(type) {
	case *question.ListPick:
		sel := a.SelectedIndices()
		if len(sel) == 0 {
			return incomplete(sel, msgSelectAtLeastOne)
		}
		return judge(sameSet(sel, b.Answer), sel, msgIncorrectSelect)

	case *question.MCQSingle:
		i, ok := a.SelectedIndex()
		if !ok {
			return incomplete(nil, msgSelectAnswer)
		}
		return judge(slices.Contains(b.Answer, i), i, msgIncorrect)

	case *question.MCQMultiple:
		sel := a.SelectedIndices()
		return judge(sameSet(sel, b.Answer), sel, msgIncorrectSelect)

	case *question.WordFill:
		return evalWordFill(b, a.TextEntries())

	case *question.FillBlanksDropdown:
		return evalDropdown(b, a.RowSelections())

	case *question.MatchSentence:
		sel := a.RowSelections()
		got := make(map[string]string, len(b.Pairs))
		ok := true
		for i, p := range b.Pairs {
			v := at(sel, i)
			got[p.Key()] = v
			want, found := b.Expected(i)
			if !found || v != want {
				ok = false
			}
		}
		return judge(ok, got, msgIncorrectMatching)

	case *question.Categorization:
		c := a.ChosenCategory()
		return judge(c == b.Correct, c, msgIncorrectCategory)

	case *question.CategorizationMultiple:
		sel := a.RowSelections()
		got := make(map[string]string, len(b.Stimuli))
		ok := true
		for i, s := range b.Stimuli {
			key, v := s.Key(), at(sel, i)
			if key == "" {
				ok = false
				continue
			}
			got[key] = v
			want, found := b.Answer[key]
			if !found || v != want {
				ok = false
			}
		}
		return judge(ok, got, msgSomeCategories)

	case *question.MatchPhrases:
		sel := a.RowSelections()
		got := make(map[string]string, len(b.Pairs))
		ok := true
		for i, p := range b.Pairs {
			v := at(sel, i)
			got[p.Source] = v
			want, found := b.Answer[p.Source]
			if !found || v != want {
				ok = false
			}
		}
		return judge(ok, got, msgIncorrectMatching)

	case *question.SequenceAudio:
		return evalSequence(b, a.SequenceOrders())

	case *question.OrderPhrase:
		order := slices.Clone(a.DisplayedOrder())
		return judge(slices.Equal(order, b.Answer), order, msgPhraseOrder)

	case *question.ImageTagging:
		return evalTagging(b, q.Media.Image, a)
	}
	return ungradable(msgUnknownType)
}

func evalWordFill(b *question.WordFill, entries []string) Verdict {
	norm := make([]string, len(entries))
	for i, e := range entries {
		norm[i] = strings.TrimSpace(e)
	}
	ok := len(norm) <= len(b.Answers)
	for i, want := range b.Answers {
		if !strings.EqualFold(at(norm, i), strings.TrimSpace(want)) {
			ok = false
		}
	}
	return judge(ok, norm, msgSomeAnswers)
}

func evalDropdown(b *question.FillBlanksDropdown, sel []string) Verdict {
	got := slices.Clone(sel)
	ok := true
	for i, want := range b.Answers {
		if i >= len(sel) || sel[i] != want {
			ok = false
		}
	}
	return judge(ok, got, msgSomeBlanks)
}

func evalSequence(b *question.SequenceAudio, orders []int) Verdict {
	norm := make([]int, len(b.AudioOptions))
	complete := len(orders) >= len(b.AudioOptions)
	for i := range b.AudioOptions {
		o := 0
		if i < len(orders) {
			o = orders[i]
		}
		if o <= 0 {
			complete = false
			norm[i] = -1
			continue
		}
		norm[i] = o - 1
	}
	if !complete {
		return incomplete(norm, msgCompleteSequence)
	}
	return judge(slices.Equal(norm, b.Answer), norm, msgIncorrectSequence)
}

func evalTagging(b *question.ImageTagging, baseImage string, a response.Adapter) Verdict {
	alt := a.ActiveAlternative()
	if alt < 0 || alt >= b.ViewCount() {
		alt = 0
	}
	view := b.View(alt, baseImage)
	placed := make(map[string]question.Point, len(view.Tags))
	ok := true
	for _, t := range view.Tags {
		p, found := a.TagPosition(alt, t.ID)
		if !found {
			p = response.Unplaced
		}
		placed[t.ID] = p
		// An expected position that was never authored is the origin.
		want := view.Answer[t.ID]
		if !found || distance(p, want) > Tolerance {
			ok = false
		}
	}
	return judge(ok, placed, msgTagPositions)
}

func distance(a, b question.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func sameSet(got, want []int) bool {
	g := slices.Compact(slices.Sorted(slices.Values(got)))
	w := slices.Compact(slices.Sorted(slices.Values(want)))
	return slices.Equal(g, w)
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
