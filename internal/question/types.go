package question

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Question is one authored quiz question: a prompt, optional media, and a
// kind-specific body holding both the payload shown to the learner and
// the answer key.
type Question struct {
	// Text is the prompt, stored under "question".
	Text string

	// Media holds optional audio, video and image paths. Paths may be
	// relative to the bank's media directory.
	Media Media

	// Body is one of the *ListPick ... *MultiQuestions payload types, or
	// *Unknown for unsupported objects. A nil Body reads as KindUnknown.
	Body Body
}

// Kind returns the discriminant of the question's body.
func (q Question) Kind() Kind {
	if q.Body == nil {
		return KindUnknown
	}
	return q.Body.Kind()
}

// Media lists the optional media attached to a question.
type Media struct {
	Audio string
	Video string
	Image string
}

// IsZero reports whether no media path is set.
func (m Media) IsZero() bool {
	return m.Audio == "" && m.Video == "" && m.Image == ""
}

// Body is the sealed set of per-kind payloads.
type Body interface {
	Kind() Kind
	isBody()
}

// Option is one selectable entry of a choice question. Options authored as
// plain strings keep Rich false and are written back as strings; object
// options ({text, image}) keep Rich true.
type Option struct {
	Text  string
	Image string
	Rich  bool
}

// Label is the text shown for the option: its text, or the image file name
// for image-only options.
func (o Option) Label() string {
	if o.Text != "" {
		return o.Text
	}
	if o.Image != "" {
		return filepath.Base(o.Image)
	}
	return ""
}

// MarshalJSON writes plain options as strings and rich options as objects.
func (o Option) MarshalJSON() ([]byte, error) {
	if !o.Rich {
		return json.Marshal(o.Text)
	}
	return json.Marshal(struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}{o.Text, o.Image})
}

// Point is a position in image-relative coordinates.
type Point struct {
	X float64
	Y float64
}

// MarshalJSON writes the point as a two-element array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON reads a [x, y] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(xy) < 2 {
		return fmt.Errorf("point: want [x, y], got %d values", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// ListPick asks the learner to select every correct option from a list.
type ListPick struct {
	Options []Option
	Answer  []int
}

// MCQSingle is a single-choice question. Answer is a set; a selection is
// correct when it is a member.
type MCQSingle struct {
	Options []Option
	Answer  []int
}

// MCQMultiple is a multiple-choice question graded by exact set equality.
type MCQMultiple struct {
	Options []Option
	Answer  []int
}

// WordFill interleaves N+1 sentence parts with N free-text blanks.
type WordFill struct {
	SentenceParts []string
	Answers       []string
}

// Blanks returns the number of blanks, which is driven by the answer key.
func (w *WordFill) Blanks() int { return len(w.Answers) }

// SentencePair is one row of a match_sentence question. The left side is
// an image when ImagePath is set, otherwise the sentence text.
type SentencePair struct {
	Sentence  string
	ImagePath string

	// Options are the choices offered for this row. Nil means the row
	// offers every pair's sentence.
	Options []string
}

// Key is the answer-map key for the pair: the image file name when an
// image is present, otherwise the sentence.
func (p SentencePair) Key() string {
	if p.ImagePath != "" {
		return filepath.Base(p.ImagePath)
	}
	return p.Sentence
}

// MatchSentence matches sentences (or images) with text choices.
type MatchSentence struct {
	Pairs  []SentencePair
	Answer map[string]string
}

// Choices returns the options offered for pair i.
func (m *MatchSentence) Choices(i int) []string {
	if i < 0 || i >= len(m.Pairs) {
		return nil
	}
	if m.Pairs[i].Options != nil {
		return m.Pairs[i].Options
	}
	out := make([]string, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		if p.Sentence != "" {
			out = append(out, p.Sentence)
		}
	}
	return out
}

// Expected returns the authored answer for pair i. Keys authored against
// the full image path are still honored.
func (m *MatchSentence) Expected(i int) (string, bool) {
	p := m.Pairs[i]
	if v, ok := m.Answer[p.Key()]; ok {
		return v, true
	}
	if p.ImagePath != "" {
		if v, ok := m.Answer[p.ImagePath]; ok {
			return v, true
		}
	}
	return "", false
}

// Categorization picks a single category for the prompt.
type Categorization struct {
	Categories []string
	Correct    string
}

// Stimulus is one item to categorize: text, an image, or both.
type Stimulus struct {
	Text  string
	Image string
}

// Key is the answer-map key: the text when non-empty, otherwise the image
// file name. Empty when the stimulus carries neither.
func (s Stimulus) Key() string {
	if s.Text != "" {
		return s.Text
	}
	if s.Image != "" {
		return filepath.Base(s.Image)
	}
	return ""
}

// CategorizationMultiple assigns a category to each stimulus.
type CategorizationMultiple struct {
	Stimuli    []Stimulus
	Categories []string
	Answer     map[string]string
}

// SequenceAudio asks for the playback order of a set of audio clips.
// Answer[i] is the 0-based order expected at position i.
type SequenceAudio struct {
	AudioOptions []string
	Answer       []int
}

// OrderPhrase asks the learner to reorder shuffled phrases.
type OrderPhrase struct {
	PhraseShuffled []string
	Answer         []string
}

// FillBlanksDropdown interleaves sentence parts with closed-choice blanks.
type FillBlanksDropdown struct {
	SentenceParts    []string
	OptionsForBlanks [][]string
	Answers          []string
}

// Blanks returns the number of blanks, which is driven by the option lists.
func (f *FillBlanksDropdown) Blanks() int { return len(f.OptionsForBlanks) }

// PhrasePair is a phrase beginning and its candidate endings.
type PhrasePair struct {
	Source  string
	Targets []string
}

// MatchPhrases matches each source phrase to one of its targets.
type MatchPhrases struct {
	Pairs  []PhrasePair
	Answer map[string]string
}

// Tag is a draggable label on an image.
type Tag struct {
	ID    string
	Label string
}

// TaggingAlternative is an alternative view of an image_tagging question
// with its own image, tags and answer positions.
type TaggingAlternative struct {
	Image       string
	ButtonLabel string
	Tags        []Tag
	Answer      map[string]Point
}

// ImageTagging asks the learner to drag tags onto the correct spots of an
// image. The base image is the question's Media.Image.
type ImageTagging struct {
	ButtonLabel  string
	Tags         []Tag
	Answer       map[string]Point
	Alternatives []TaggingAlternative
}

// TaggingView is the resolved image, tags and answer for one alternative.
type TaggingView struct {
	Image  string
	Tags   []Tag
	Answer map[string]Point
}

// ViewCount returns the number of selectable views: the base plus each
// alternative.
func (t *ImageTagging) ViewCount() int {
	return len(t.Alternatives) + 1
}

// View resolves alternative alt. Zero and out-of-range indices select the
// base view; 1..N select Alternatives[alt-1]. An alternative without tags
// or answers inherits the base ones.
func (t *ImageTagging) View(alt int, baseImage string) TaggingView {
	v := TaggingView{Image: baseImage, Tags: t.Tags, Answer: t.Answer}
	if alt < 1 || alt > len(t.Alternatives) {
		return v
	}
	a := t.Alternatives[alt-1]
	if a.Image != "" {
		v.Image = a.Image
	}
	if len(a.Tags) > 0 {
		v.Tags = a.Tags
	}
	if len(a.Answer) > 0 {
		v.Answer = a.Answer
	}
	return v
}

// MultiQuestions is the composite kind: a block of flat questions.
type MultiQuestions struct {
	Questions []Question
}

// Unknown preserves an unsupported object verbatim.
type Unknown struct {
	// TypeName is the raw "type" string, empty when absent or not a string.
	TypeName string

	// Raw is the original JSON, re-emitted byte for byte on encode.
	Raw json.RawMessage
}

func (*ListPick) Kind() Kind               { return KindListPick }
func (*MCQSingle) Kind() Kind              { return KindMCQSingle }
func (*MCQMultiple) Kind() Kind            { return KindMCQMultiple }
func (*WordFill) Kind() Kind               { return KindWordFill }
func (*MatchSentence) Kind() Kind          { return KindMatchSentence }
func (*Categorization) Kind() Kind         { return KindCategorization }
func (*CategorizationMultiple) Kind() Kind { return KindCategorizationMultiple }
func (*SequenceAudio) Kind() Kind          { return KindSequenceAudio }
func (*OrderPhrase) Kind() Kind            { return KindOrderPhrase }
func (*FillBlanksDropdown) Kind() Kind     { return KindFillBlanksDropdown }
func (*MatchPhrases) Kind() Kind           { return KindMatchPhrases }
func (*ImageTagging) Kind() Kind           { return KindImageTagging }
func (*MultiQuestions) Kind() Kind         { return KindMultiQuestions }
func (*Unknown) Kind() Kind                { return KindUnknown }

func (*ListPick) isBody()               {}
func (*MCQSingle) isBody()              {}
func (*MCQMultiple) isBody()            {}
func (*WordFill) isBody()               {}
func (*MatchSentence) isBody()          {}
func (*Categorization) isBody()         {}
func (*CategorizationMultiple) isBody() {}
func (*SequenceAudio) isBody()          {}
func (*OrderPhrase) isBody()            {}
func (*FillBlanksDropdown) isBody()     {}
func (*MatchPhrases) isBody()           {}
func (*ImageTagging) isBody()           {}
func (*MultiQuestions) isBody()         {}
func (*Unknown) isBody()                {}

// options returns the option slice for the three choice kinds.
func options(b Body) ([]Option, bool) {
	switch v := b.(type) {
	case *ListPick:
		return v.Options, true
	case *MCQSingle:
		return v.Options, true
	case *MCQMultiple:
		return v.Options, true
	}
	return nil, false
}
