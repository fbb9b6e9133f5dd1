package question

import (
	"slices"
	"testing"
)

func threeOptions() []Option {
	return []Option{{Text: "a"}, {Text: "b"}, {Text: "c"}}
}

func TestRemoveOption(t *testing.T) {
	tests := []struct {
		name   string
		body   Body
		remove int
		want   []int
	}{
		{"list_pick drops removed", &ListPick{Options: threeOptions(), Answer: []int{0, 1}}, 1, []int{0}},
		{"list_pick shifts higher", &ListPick{Options: threeOptions(), Answer: []int{0, 2}}, 1, []int{0, 1}},
		{"mcq_multiple drops and shifts", &MCQMultiple{Options: threeOptions(), Answer: []int{0, 1, 2}}, 0, []int{0, 1}},
		{"mcq_single removed resets to zero", &MCQSingle{Options: threeOptions(), Answer: []int{2}}, 2, []int{0}},
		{"mcq_single above shifts", &MCQSingle{Options: threeOptions(), Answer: []int{2}}, 0, []int{1}},
		{"mcq_single below kept", &MCQSingle{Options: threeOptions(), Answer: []int{0}}, 1, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Text: "Q", Body: tt.body}
			if err := RemoveOption(&q, tt.remove); err != nil {
				t.Fatalf("remove: %v", err)
			}
			var got []int
			var n int
			switch b := q.Body.(type) {
			case *ListPick:
				got, n = b.Answer, len(b.Options)
			case *MCQMultiple:
				got, n = b.Answer, len(b.Options)
			case *MCQSingle:
				got, n = b.Answer, len(b.Options)
			}
			if n != 2 {
				t.Errorf("options = %d, want 2", n)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("answer = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveOption_Errors(t *testing.T) {
	q := Question{Text: "Q", Body: &ListPick{Options: threeOptions()}}
	if err := RemoveOption(&q, 3); err == nil {
		t.Error("expected out of range error")
	}
	q = Question{Text: "Q", Body: &OrderPhrase{}}
	if err := RemoveOption(&q, 0); err == nil {
		t.Error("expected error for kind without options")
	}
}

func TestTruncateOptions(t *testing.T) {
	multi := Question{Text: "Q", Body: &MCQMultiple{Options: threeOptions(), Answer: []int{0, 2}}}
	if err := TruncateOptions(&multi, 2); err != nil {
		t.Fatal(err)
	}
	if got := multi.Body.(*MCQMultiple).Answer; !slices.Equal(got, []int{0}) {
		t.Errorf("mcq_multiple answer = %v, want [0]", got)
	}

	single := Question{Text: "Q", Body: &MCQSingle{Options: threeOptions(), Answer: []int{2}}}
	if err := TruncateOptions(&single, 1); err != nil {
		t.Fatal(err)
	}
	if got := single.Body.(*MCQSingle).Answer; !slices.Equal(got, []int{0}) {
		t.Errorf("mcq_single answer = %v, want [0]", got)
	}

	if err := TruncateOptions(&single, 0); err != nil {
		t.Fatal(err)
	}
	if b := single.Body.(*MCQSingle); len(b.Options) != 0 || len(b.Answer) != 0 {
		t.Errorf("mcq_single with no options = %d options, answer %v; want empty answer", len(b.Options), b.Answer)
	}
}

func TestRemoveOption_LastMCQSingleOption(t *testing.T) {
	q := Question{Text: "Q", Body: &MCQSingle{Options: []Option{{Text: "only"}}, Answer: []int{0}}}
	if err := RemoveOption(&q, 0); err != nil {
		t.Fatal(err)
	}
	if got := q.Body.(*MCQSingle).Answer; len(got) != 0 {
		t.Errorf("answer = %v, want empty", got)
	}
}

func TestClampAnswers_SequenceAudioKeepsPositions(t *testing.T) {
	q := Question{Body: &SequenceAudio{AudioOptions: []string{"x", "y", "z"}, Answer: []int{2, 5, 0, 1}}}
	ClampAnswers(&q)
	if got := q.Body.(*SequenceAudio).Answer; !slices.Equal(got, []int{2, 5, 0}) {
		t.Errorf("answer = %v, want [2 5 0]", got)
	}
}

func TestClampAnswers_Composite(t *testing.T) {
	q := Question{Body: &MultiQuestions{Questions: []Question{
		{Text: "a", Body: &ListPick{Options: threeOptions(), Answer: []int{1, 5}}},
		{Text: "b", Body: &SequenceAudio{AudioOptions: []string{"x", "y"}, Answer: []int{1, 0, 2}}},
	}}}
	ClampAnswers(&q)

	mq := q.Body.(*MultiQuestions)
	if got := mq.Questions[0].Body.(*ListPick).Answer; !slices.Equal(got, []int{1}) {
		t.Errorf("list_pick answer = %v, want [1]", got)
	}
	if got := mq.Questions[1].Body.(*SequenceAudio).Answer; !slices.Equal(got, []int{1, 0}) {
		t.Errorf("sequence_audio answer = %v, want [1 0]", got)
	}
}

func TestRemoveStimulus(t *testing.T) {
	q := Question{Text: "Q", Body: &CategorizationMultiple{
		Stimuli: []Stimulus{{Text: "dog"}, {Image: "pics/cat.png"}, {Image: "pics/cow.png"}},
		Answer: map[string]string{
			"dog":          "Mammal",
			"cat.png":      "Mammal",
			"pics/cow.png": "Mammal",
		},
	}}

	for _, i := range []int{2, 1, 0} {
		if err := RemoveStimulus(&q, i); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
	}
	b := q.Body.(*CategorizationMultiple)
	if len(b.Stimuli) != 0 || len(b.Answer) != 0 {
		t.Errorf("stimuli=%v answer=%v, want both empty", b.Stimuli, b.Answer)
	}
}

func TestRemovePair(t *testing.T) {
	ms, _ := Template(KindMatchSentence)
	if err := RemovePair(&ms, 0); err != nil {
		t.Fatal(err)
	}
	b := ms.Body.(*MatchSentence)
	if _, ok := b.Answer["image1.jpg"]; ok {
		t.Error("answer for removed pair still present")
	}
	if len(b.Pairs) != 1 {
		t.Errorf("pairs = %d, want 1", len(b.Pairs))
	}

	mp, _ := Template(KindMatchPhrases)
	if err := RemovePair(&mp, 0); err != nil {
		t.Fatal(err)
	}
	if n := len(mp.Body.(*MatchPhrases).Answer); n != 0 {
		t.Errorf("answer entries = %d, want 0", n)
	}
}

func TestImageTaggingEdits(t *testing.T) {
	q, _ := Template(KindImageTagging)
	b := q.Body.(*ImageTagging)
	b.Alternatives = append(b.Alternatives, b.NewAlternative())

	if b.Alternatives[0].ButtonLabel != "Alt View 1" {
		t.Errorf("button label = %q", b.Alternatives[0].ButtonLabel)
	}
	if err := SetTagAnswer(&q, 1, "tag1", Point{X: 7, Y: 8}); err != nil {
		t.Fatal(err)
	}
	if got := b.Alternatives[0].Answer["tag1"]; got != (Point{X: 7, Y: 8}) {
		t.Errorf("alt answer = %v", got)
	}
	if err := SetTagAnswer(&q, 2, "tag1", Point{}); err == nil {
		t.Error("expected out of range alternative error")
	}

	if err := RemoveTag(&q, "tag2"); err != nil {
		t.Fatal(err)
	}
	if len(b.Tags) != 1 || len(b.Alternatives[0].Tags) != 1 {
		t.Errorf("tag2 not removed from every view")
	}
	if _, ok := b.Alternatives[0].Answer["tag2"]; ok {
		t.Error("tag2 answer still present in alternative")
	}
}
