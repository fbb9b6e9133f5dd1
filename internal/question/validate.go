package question

import (
	"errors"
	"fmt"
	"slices"
)

// Validator checks an authored question for problems that decoding
// tolerates but a learner would trip over. Implementations are stateless.
type Validator interface {
	// Name returns a short identifier such as "structural" or "blanks".
	Name() string

	// Validate returns every problem found, or nil.
	Validate(q *Question) []*ValidationError
}

// ValidationError describes one authoring problem.
type ValidationError struct {
	Validator string // Name of the validator that reported it
	Path      string // Location inside the question, e.g. "questions[1].answer"
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Validator, e.Path, e.Message)
}

// DefaultValidators returns the standard validation chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&CompositeValidator{},
		&AnswerRangeValidator{},
		&BlanksValidator{},
		&MappingValidator{},
		&TaggingValidator{},
	}
}

// Validate runs validators against q and, for composite blocks, against
// each nested question. With no validators it uses DefaultValidators.
func Validate(q *Question, validators ...Validator) []*ValidationError {
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	var out []*ValidationError
	for _, v := range validators {
		out = append(out, v.Validate(q)...)
	}
	if mq, ok := q.Body.(*MultiQuestions); ok {
		for i := range mq.Questions {
			prefix := fmt.Sprintf("questions[%d]", i)
			for _, e := range Validate(&mq.Questions[i], validators...) {
				e.Path = joinPath(prefix, e.Path)
				out = append(out, e)
			}
		}
	}
	return out
}

// Join collapses validation errors into a single error, or nil.
func Join(errs []*ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	all := make([]error, len(errs))
	for i, e := range errs {
		all[i] = e
	}
	return errors.Join(all...)
}

// StructuralValidator checks that the type is supported and a prompt exists.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) []*ValidationError {
	if u, ok := q.Body.(*Unknown); ok {
		msg := "missing or non-string type"
		if u.TypeName != "" {
			msg = fmt.Sprintf("unsupported type %q", u.TypeName)
		}
		return []*ValidationError{{Validator: v.Name(), Path: "type", Message: msg}}
	}
	if q.Body == nil {
		return []*ValidationError{{Validator: v.Name(), Message: "question has no body"}}
	}
	if q.Text == "" && q.Kind() != KindMultiQuestions {
		return []*ValidationError{{Validator: v.Name(), Path: "question", Message: "question text is empty"}}
	}
	return nil
}

// CompositeValidator rejects empty blocks and nested composites.
type CompositeValidator struct{}

func (v *CompositeValidator) Name() string { return "composite" }

func (v *CompositeValidator) Validate(q *Question) []*ValidationError {
	mq, ok := q.Body.(*MultiQuestions)
	if !ok {
		return nil
	}
	var out []*ValidationError
	if len(mq.Questions) == 0 {
		out = append(out, &ValidationError{Validator: v.Name(), Path: "questions", Message: "block has no questions"})
	}
	for i, sub := range mq.Questions {
		if sub.Kind() == KindMultiQuestions {
			out = append(out, &ValidationError{
				Validator: v.Name(),
				Path:      fmt.Sprintf("questions[%d]", i),
				Message:   "multi_questions blocks cannot be nested",
			})
		}
	}
	return out
}

// AnswerRangeValidator checks index answer keys against their options.
type AnswerRangeValidator struct{}

func (v *AnswerRangeValidator) Name() string { return "answer-range" }

func (v *AnswerRangeValidator) Validate(q *Question) []*ValidationError {
	var out []*ValidationError
	add := func(path, format string, args ...any) {
		out = append(out, &ValidationError{Validator: v.Name(), Path: path, Message: fmt.Sprintf(format, args...)})
	}
	checkIndices := func(answer []int, n int) {
		if len(answer) == 0 {
			add("answer", "no correct option marked")
		}
		for _, a := range answer {
			if a >= n {
				add("answer", "index %d out of range (%d options)", a, n)
			}
		}
	}

	switch b := q.Body.(type) {
	case *ListPick:
		checkIndices(b.Answer, len(b.Options))
	case *MCQMultiple:
		checkIndices(b.Answer, len(b.Options))
	case *MCQSingle:
		checkIndices(b.Answer, len(b.Options))
		if len(b.Answer) > 1 {
			add("answer", "single choice has %d correct options, only the first is used when editing", len(b.Answer))
		}
	case *SequenceAudio:
		if len(b.Answer) != len(b.AudioOptions) {
			add("answer", "answer has %d entries for %d audio options", len(b.Answer), len(b.AudioOptions))
		}
		for _, a := range b.Answer {
			if a >= len(b.AudioOptions) {
				add("answer", "order %d out of range (%d audio options)", a, len(b.AudioOptions))
			}
		}
	}
	return out
}

// BlanksValidator checks that sentence parts, blanks and answers line up.
type BlanksValidator struct{}

func (v *BlanksValidator) Name() string { return "blanks" }

func (v *BlanksValidator) Validate(q *Question) []*ValidationError {
	var out []*ValidationError
	add := func(path, format string, args ...any) {
		out = append(out, &ValidationError{Validator: v.Name(), Path: path, Message: fmt.Sprintf(format, args...)})
	}

	switch b := q.Body.(type) {
	case *WordFill:
		if len(b.Answers) == 0 {
			add("answers", "no blanks")
		}
		if len(b.SentenceParts) != len(b.Answers)+1 {
			add("sentence_parts", "%d sentence parts for %d blanks, want %d", len(b.SentenceParts), len(b.Answers), len(b.Answers)+1)
		}
	case *FillBlanksDropdown:
		n := b.Blanks()
		if n == 0 {
			add("options_for_blanks", "no blanks")
		}
		if len(b.SentenceParts) != n+1 {
			add("sentence_parts", "%d sentence parts for %d blanks, want %d", len(b.SentenceParts), n, n+1)
		}
		if len(b.Answers) != n {
			add("answers", "%d answers for %d blanks", len(b.Answers), n)
		}
		for i, a := range b.Answers {
			if i < n && !slices.Contains(b.OptionsForBlanks[i], a) {
				add(fmt.Sprintf("answers[%d]", i), "%q is not one of the blank's options", a)
			}
		}
	}
	return out
}

// MappingValidator checks that every keyed item has an answer the learner
// can actually choose.
type MappingValidator struct{}

func (v *MappingValidator) Name() string { return "mapping" }

func (v *MappingValidator) Validate(q *Question) []*ValidationError {
	var out []*ValidationError
	add := func(path, format string, args ...any) {
		out = append(out, &ValidationError{Validator: v.Name(), Path: path, Message: fmt.Sprintf(format, args...)})
	}

	switch b := q.Body.(type) {
	case *MatchSentence:
		for i, p := range b.Pairs {
			path := fmt.Sprintf("pairs[%d]", i)
			if p.Key() == "" {
				add(path, "pair has neither sentence nor image")
				continue
			}
			want, ok := b.Expected(i)
			if !ok {
				add("answer", "no answer for %q", p.Key())
				continue
			}
			if !slices.Contains(b.Choices(i), want) {
				add(path, "answer %q is not among the pair's choices", want)
			}
		}
	case *Categorization:
		if !slices.Contains(b.Categories, b.Correct) {
			add("correct", "%q is not one of the categories", b.Correct)
		}
	case *CategorizationMultiple:
		for i, s := range b.Stimuli {
			key := s.Key()
			if key == "" {
				add(fmt.Sprintf("stimuli[%d]", i), "stimulus has neither text nor image")
				continue
			}
			want, ok := b.Answer[key]
			if !ok {
				add("answer", "no answer for %q", key)
				continue
			}
			if !slices.Contains(b.Categories, want) {
				add("answer", "category %q for %q is not one of the categories", want, key)
			}
		}
	case *MatchPhrases:
		for i, p := range b.Pairs {
			want, ok := b.Answer[p.Source]
			if !ok {
				add("answer", "no answer for %q", p.Source)
				continue
			}
			if !slices.Contains(p.Targets, want) {
				add(fmt.Sprintf("pairs[%d]", i), "answer %q is not among the targets", want)
			}
		}
	case *OrderPhrase:
		a, s := slices.Clone(b.Answer), slices.Clone(b.PhraseShuffled)
		slices.Sort(a)
		slices.Sort(s)
		if !slices.Equal(a, s) {
			add("answer", "answer is not a reordering of phrase_shuffled")
		}
	}
	return out
}

// TaggingValidator checks tag ids and that every tag has an expected
// position in every view.
type TaggingValidator struct{}

func (v *TaggingValidator) Name() string { return "tagging" }

func (v *TaggingValidator) Validate(q *Question) []*ValidationError {
	b, ok := q.Body.(*ImageTagging)
	if !ok {
		return nil
	}
	var out []*ValidationError
	add := func(path, format string, args ...any) {
		out = append(out, &ValidationError{Validator: v.Name(), Path: path, Message: fmt.Sprintf(format, args...)})
	}

	for alt := 0; alt < b.ViewCount(); alt++ {
		view := b.View(alt, q.Media.Image)
		path := "answer"
		if alt > 0 {
			path = fmt.Sprintf("alternatives[%d].answer", alt-1)
		}
		if len(view.Tags) == 0 {
			add(path, "view has no tags")
		}
		seen := map[string]bool{}
		for _, t := range view.Tags {
			if t.ID == "" {
				add(path, "tag %q has no id", t.Label)
				continue
			}
			if seen[t.ID] {
				add(path, "duplicate tag id %q", t.ID)
			}
			seen[t.ID] = true
			if _, ok := view.Answer[t.ID]; !ok {
				add(path, "no position for tag %q", t.ID)
			}
		}
	}
	return out
}

func joinPath(prefix, path string) string {
	if path == "" {
		return prefix
	}
	return prefix + "." + path
}
