package question

import (
	"fmt"
	"path/filepath"
	"slices"
)

// RemoveOption deletes option i of a choice question and renumbers the
// answer key. For list_pick and mcq_multiple the removed index is dropped
// and higher indices shift down by one. For mcq_single a correct index
// equal to i resets to 0 instead of being dropped.
func RemoveOption(q *Question, i int) error {
	switch b := q.Body.(type) {
	case *ListPick:
		if i < 0 || i >= len(b.Options) {
			return fmt.Errorf("option %d out of range (%d options)", i, len(b.Options))
		}
		b.Options = slices.Delete(b.Options, i, i+1)
		b.Answer = shiftDrop(b.Answer, i)
	case *MCQMultiple:
		if i < 0 || i >= len(b.Options) {
			return fmt.Errorf("option %d out of range (%d options)", i, len(b.Options))
		}
		b.Options = slices.Delete(b.Options, i, i+1)
		b.Answer = shiftDrop(b.Answer, i)
	case *MCQSingle:
		if i < 0 || i >= len(b.Options) {
			return fmt.Errorf("option %d out of range (%d options)", i, len(b.Options))
		}
		b.Options = slices.Delete(b.Options, i, i+1)
		for j, a := range b.Answer {
			switch {
			case a == i:
				b.Answer[j] = 0
			case a > i:
				b.Answer[j] = a - 1
			}
		}
		b.Answer = dedupe(b.Answer)
		if len(b.Options) == 0 {
			b.Answer = []int{}
		}
	default:
		return fmt.Errorf("%s questions have no options", q.Kind())
	}
	return nil
}

// TruncateOptions shrinks a choice question to n options and clamps the
// answer key to the new range.
func TruncateOptions(q *Question, n int) error {
	opts, ok := options(q.Body)
	if !ok {
		return fmt.Errorf("%s questions have no options", q.Kind())
	}
	if n < 0 || n >= len(opts) {
		return nil
	}
	switch b := q.Body.(type) {
	case *ListPick:
		b.Options = b.Options[:n]
	case *MCQSingle:
		b.Options = b.Options[:n]
	case *MCQMultiple:
		b.Options = b.Options[:n]
	}
	ClampAnswers(q)
	return nil
}

// ClampAnswers brings index answer keys back into range of their option
// sequence: out-of-range indices are dropped, except for mcq_single where
// they reset to 0 (or clear when no options remain). sequence_audio
// answers are positional and are only truncated to the option count.
// Composite blocks are clamped recursively.
func ClampAnswers(q *Question) {
	switch b := q.Body.(type) {
	case *ListPick:
		b.Answer = dropOutOfRange(b.Answer, len(b.Options))
	case *MCQMultiple:
		b.Answer = dropOutOfRange(b.Answer, len(b.Options))
	case *SequenceAudio:
		// Positional: answer[i] belongs to option i.
		if len(b.Answer) > len(b.AudioOptions) {
			b.Answer = b.Answer[:len(b.AudioOptions)]
		}
	case *MCQSingle:
		if len(b.Options) == 0 {
			b.Answer = []int{}
			return
		}
		for j, a := range b.Answer {
			if a >= len(b.Options) {
				b.Answer[j] = 0
			}
		}
		b.Answer = dedupe(b.Answer)
	case *MultiQuestions:
		for i := range b.Questions {
			ClampAnswers(&b.Questions[i])
		}
	}
}

// RemoveStimulus deletes stimulus i of a categorization_multiple question
// along with its answer entry, which may be keyed by text, full image path
// or image file name.
func RemoveStimulus(q *Question, i int) error {
	b, ok := q.Body.(*CategorizationMultiple)
	if !ok {
		return fmt.Errorf("%s questions have no stimuli", q.Kind())
	}
	if i < 0 || i >= len(b.Stimuli) {
		return fmt.Errorf("stimulus %d out of range (%d stimuli)", i, len(b.Stimuli))
	}
	s := b.Stimuli[i]
	b.Stimuli = slices.Delete(b.Stimuli, i, i+1)
	switch {
	case s.Text != "":
		delete(b.Answer, s.Text)
	case s.Image != "":
		delete(b.Answer, s.Image)
		delete(b.Answer, filepath.Base(s.Image))
	}
	return nil
}

// RemovePair deletes pair i of a match_sentence or match_phrases question
// along with its answer entry.
func RemovePair(q *Question, i int) error {
	switch b := q.Body.(type) {
	case *MatchSentence:
		if i < 0 || i >= len(b.Pairs) {
			return fmt.Errorf("pair %d out of range (%d pairs)", i, len(b.Pairs))
		}
		p := b.Pairs[i]
		b.Pairs = slices.Delete(b.Pairs, i, i+1)
		delete(b.Answer, p.Key())
		if p.ImagePath != "" {
			delete(b.Answer, p.ImagePath)
		}
	case *MatchPhrases:
		if i < 0 || i >= len(b.Pairs) {
			return fmt.Errorf("pair %d out of range (%d pairs)", i, len(b.Pairs))
		}
		src := b.Pairs[i].Source
		b.Pairs = slices.Delete(b.Pairs, i, i+1)
		delete(b.Answer, src)
	default:
		return fmt.Errorf("%s questions have no pairs", q.Kind())
	}
	return nil
}

// RemoveTag deletes a tag by id from the base view and every alternative.
func RemoveTag(q *Question, id string) error {
	b, ok := q.Body.(*ImageTagging)
	if !ok {
		return fmt.Errorf("%s questions have no tags", q.Kind())
	}
	byID := func(t Tag) bool { return t.ID == id }
	b.Tags = slices.DeleteFunc(b.Tags, byID)
	delete(b.Answer, id)
	for i := range b.Alternatives {
		b.Alternatives[i].Tags = slices.DeleteFunc(b.Alternatives[i].Tags, byID)
		delete(b.Alternatives[i].Answer, id)
	}
	return nil
}

// SetTagAnswer records the expected position of a tag in view alt, where
// 0 is the base view and 1..N address the alternatives.
func SetTagAnswer(q *Question, alt int, id string, p Point) error {
	b, ok := q.Body.(*ImageTagging)
	if !ok {
		return fmt.Errorf("%s questions have no tags", q.Kind())
	}
	if alt < 0 || alt > len(b.Alternatives) {
		return fmt.Errorf("alternative %d out of range (%d views)", alt, b.ViewCount())
	}
	if alt == 0 {
		if b.Answer == nil {
			b.Answer = map[string]Point{}
		}
		b.Answer[id] = p
		return nil
	}
	a := &b.Alternatives[alt-1]
	if a.Answer == nil {
		a.Answer = map[string]Point{}
	}
	a.Answer[id] = p
	return nil
}

// shiftDrop removes idx from the answer set and shifts higher indices down.
func shiftDrop(answer []int, idx int) []int {
	out := make([]int, 0, len(answer))
	for _, a := range answer {
		switch {
		case a == idx:
		case a > idx:
			out = append(out, a-1)
		default:
			out = append(out, a)
		}
	}
	return out
}

func dropOutOfRange(answer []int, n int) []int {
	out := make([]int, 0, len(answer))
	for _, a := range answer {
		if a >= 0 && a < n {
			out = append(out, a)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each index.
func dedupe(answer []int) []int {
	seen := make(map[int]bool, len(answer))
	out := make([]int, 0, len(answer))
	for _, a := range answer {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}
