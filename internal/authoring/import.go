package authoring

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wifeymooc/quizkit/internal/question"
)

// Result is the outcome of converting a batch of drafts.
type Result struct {
	Questions []question.Question

	// Skipped explains each draft that was not converted.
	Skipped []string
}

// kindAliases maps the format labels used by hand-written prompts to kinds.
var kindAliases = map[string]question.Kind{
	"mcq single choice":             question.KindMCQSingle,
	"mcq multiple choice":           question.KindMCQMultiple,
	"list pick":                     question.KindListPick,
	"fill in the blanks":            question.KindWordFill,
	"fill in the blanks (dropdown)": question.KindFillBlanksDropdown,
	"order the phrase":              question.KindOrderPhrase,
	"categorization":                question.KindCategorizationMultiple,
}

// Default prompts for drafts that arrive without one.
const (
	defaultWordFillPrompt = "Fill in the blanks."
	defaultDropdownPrompt = "Choose the right option in each list."
	defaultOrderPrompt    = "Put the words in the right order."
	defaultSortPrompt     = "Sort these items into the right categories."
	defaultPickPrompt     = "Select every correct answer."
)

// blankCategory is the placeholder offered before any real category.
const blankCategory = " "

// Importer converts drafts to questions. Options are shuffled with its
// random source.
type Importer struct {
	rng *rand.Rand
}

// NewImporter returns an Importer drawing from rng, or from a time-seeded
// source when rng is nil.
func NewImporter(rng *rand.Rand) *Importer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Importer{rng: rng}
}

// Import converts pasted draft JSON with a time-seeded shuffle.
func Import(raw []byte) (*Result, error) {
	return NewImporter(nil).Import(raw)
}

// Import converts raw, which may be a {"drafts": [...]} object, a bare
// array of drafts, or a single draft object. Unsupported or unusable
// drafts are skipped and reported; only malformed JSON is an error.
func (im *Importer) Import(raw []byte) (*Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("drafts are not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if d := root.Get("drafts"); d.IsArray() {
		root = d
	}

	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("drafts must be a JSON array or object")
	}

	res := &Result{}
	for i, item := range items {
		q, err := im.convert(item)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("draft %d: %v", i+1, err))
			continue
		}
		if errs := question.Validate(&q); len(errs) > 0 {
			res.Skipped = append(res.Skipped, fmt.Sprintf("draft %d: %v", i+1, errs[0]))
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res, nil
}

func (im *Importer) convert(d gjson.Result) (question.Question, error) {
	kind, err := draftKind(d)
	if err != nil {
		return question.Question{}, err
	}
	prompt := strings.TrimSpace(field(d, "question").String())
	answers := textList(field(d, "answers", "réponses"))
	switch single := field(d, "answer", "réponse"); {
	case single.Type == gjson.String:
		answers = append([]string{single.String()}, answers...)
	case single.IsArray() && len(answers) == 0:
		answers = textList(single)
	}
	distractors := textList(field(d, "distractors", "distracteurs"))

	switch kind {
	case question.KindMCQSingle:
		if len(answers) == 0 {
			return question.Question{}, fmt.Errorf("mcq_single draft has no answer")
		}
		opts, idx := im.choices(answers[:1], distractors)
		return question.Question{Text: prompt, Body: &question.MCQSingle{Options: rich(opts), Answer: idx}}, nil

	case question.KindMCQMultiple:
		if len(answers) == 0 {
			return question.Question{}, fmt.Errorf("mcq_multiple draft has no answers")
		}
		opts, idx := im.choices(answers, distractors)
		return question.Question{Text: prompt, Body: &question.MCQMultiple{Options: rich(opts), Answer: idx}}, nil

	case question.KindListPick:
		opts := textList(d.Get("options"))
		var idx []int
		if len(opts) == 0 {
			opts, idx = im.choices(answers, distractors)
		} else {
			idx = indicesOf(opts, answers)
		}
		if len(idx) == 0 {
			return question.Question{}, fmt.Errorf("list_pick draft has no correct option")
		}
		return question.Question{
			Text: or(prompt, defaultPickPrompt),
			Body: &question.ListPick{Options: plain(opts), Answer: idx},
		}, nil

	case question.KindWordFill:
		parts := textList(field(d, "sentence_parts", "parts"))
		if len(parts) == 0 {
			return question.Question{}, fmt.Errorf("word_fill draft has no sentence parts")
		}
		return question.Question{
			Text: or(prompt, defaultWordFillPrompt),
			Body: &question.WordFill{SentenceParts: parts, Answers: answers},
		}, nil

	case question.KindFillBlanksDropdown:
		parts := textList(d.Get("sentence_parts"))
		var lists [][]string
		d.Get("options_for_blanks").ForEach(func(_, v gjson.Result) bool {
			lists = append(lists, textList(v))
			return true
		})
		if len(parts) == 0 || len(lists) == 0 {
			return question.Question{}, fmt.Errorf("fill_blanks_dropdown draft has no blanks")
		}
		return question.Question{
			Text: or(prompt, defaultDropdownPrompt),
			Body: &question.FillBlanksDropdown{SentenceParts: parts, OptionsForBlanks: lists, Answers: answers},
		}, nil

	case question.KindOrderPhrase:
		if len(answers) < 2 {
			return question.Question{}, fmt.Errorf("order_phrase draft needs at least two chunks")
		}
		shuffled := textList(d.Get("phrase_shuffled"))
		if len(shuffled) != len(answers) {
			shuffled = im.scramble(answers)
		}
		return question.Question{
			Text: or(prompt, defaultOrderPrompt),
			Body: &question.OrderPhrase{PhraseShuffled: shuffled, Answer: answers},
		}, nil

	case question.KindCategorizationMultiple:
		return im.categorization(d, or(prompt, defaultSortPrompt))
	}
	return question.Question{}, fmt.Errorf("unsupported draft kind %q", kind)
}

// categorization accepts assignments as [{item, category}] or as an
// item -> category object under "answer".
func (im *Importer) categorization(d gjson.Result, prompt string) (question.Question, error) {
	answer := map[string]string{}
	var items []string
	d.Get("assignments").ForEach(func(_, a gjson.Result) bool {
		item, cat := a.Get("item").String(), a.Get("category").String()
		if item != "" {
			items = append(items, item)
			answer[item] = cat
		}
		return true
	})
	if m := d.Get("answer"); m.IsObject() {
		m.ForEach(func(k, v gjson.Result) bool {
			answer[k.String()] = v.String()
			return true
		})
	}
	if s := textList(d.Get("stimuli")); len(s) > 0 {
		items = s
	}
	if len(items) == 0 {
		for k := range answer {
			items = append(items, k)
		}
		slices.Sort(items)
	}
	if len(items) == 0 {
		return question.Question{}, fmt.Errorf("categorization draft has no items")
	}

	cats := textList(d.Get("categories"))
	if len(cats) == 0 {
		return question.Question{}, fmt.Errorf("categorization draft has no categories")
	}
	stimuli := make([]question.Stimulus, len(items))
	for i, it := range items {
		stimuli[i] = question.Stimulus{Text: it}
	}
	return question.Question{
		Text: prompt,
		Body: &question.CategorizationMultiple{
			Stimuli:    stimuli,
			Categories: append([]string{blankCategory}, cats...),
			Answer:     answer,
		},
	}, nil
}

// choices shuffles correct and wrong options together and returns the
// indices of the correct ones.
func (im *Importer) choices(correct, wrong []string) ([]string, []int) {
	opts := append(slices.Clone(correct), wrong...)
	im.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, indicesOf(opts, correct)
}

// scramble returns a permutation of s that differs from it when possible.
func (im *Importer) scramble(s []string) []string {
	out := slices.Clone(s)
	im.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if slices.Equal(out, s) && len(out) > 1 {
		out = append(out[1:], out[0])
	}
	return out
}

func draftKind(d gjson.Result) (question.Kind, error) {
	name := field(d, "kind", "type", "q_type").String()
	if name == "" {
		return "", fmt.Errorf("draft has no kind")
	}
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	k := question.Kind(name)
	if !slices.Contains(DraftKinds, k) {
		return "", fmt.Errorf("unsupported draft kind %q", name)
	}
	return k, nil
}

// field returns the first of keys present on d.
func field(d gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := d.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func textList(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
		return true
	})
	return out
}

func indicesOf(opts, want []string) []int {
	var idx []int
	for i, o := range opts {
		if slices.Contains(want, o) {
			idx = append(idx, i)
		}
	}
	return idx
}

func rich(texts []string) []question.Option {
	out := make([]question.Option, len(texts))
	for i, t := range texts {
		out[i] = question.Option{Text: t, Rich: true}
	}
	return out
}

func plain(texts []string) []question.Option {
	out := make([]question.Option, len(texts))
	for i, t := range texts {
		out[i] = question.Option{Text: t}
	}
	return out
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
