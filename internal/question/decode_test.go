package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_UnknownTypePreserved(t *testing.T) {
	raw := []byte(`{"type": "hotspot",  "question":"Click it", "zones": [1,2]}`)
	q := Decode(raw)

	require.Equal(t, KindUnknown, q.Kind())
	u, ok := q.Body.(*Unknown)
	require.True(t, ok)
	assert.Equal(t, "hotspot", u.TypeName)
	assert.Equal(t, string(raw), string(u.Raw))
}

func TestDecode_NonObjectInputs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array", `[1,2,3]`},
		{"string", `"mcq_single"`},
		{"invalid json", `{"type": "mcq_single",`},
		{"missing type", `{"question": "What?"}`},
		{"numeric type", `{"type": 3, "question": "What?"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Decode([]byte(tt.raw))
			if q.Kind() != KindUnknown {
				t.Fatalf("kind = %s, want unknown", q.Kind())
			}
			enc, err := Encode(q)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(enc) != tt.raw {
				t.Errorf("re-encoded %q, want %q", enc, tt.raw)
			}
		})
	}
}

func TestDecode_CoercesMistypedFields(t *testing.T) {
	q := Decode([]byte(`{
		"type": "mcq_multiple",
		"question": 42,
		"options": "not a list",
		"answer": [0, "1", 2.5, -1, 3],
		"media": "nope"
	}`))

	b, ok := q.Body.(*MCQMultiple)
	require.True(t, ok)
	assert.Equal(t, "", q.Text)
	assert.Empty(t, b.Options)
	assert.NotNil(t, b.Options)
	assert.Equal(t, []int{0, 3}, b.Answer)
	assert.True(t, q.Media.IsZero())
}

func TestDecode_OptionsKeepShape(t *testing.T) {
	q := Decode([]byte(`{"type":"mcq_single","question":"Q","options":["plain",{"text":"rich","image":"a/b.png"},null,{"image":"pics/cat.png","text":null}],"answer":[1]}`))
	b := q.Body.(*MCQSingle)

	require.Len(t, b.Options, 4)
	assert.Equal(t, Option{Text: "plain"}, b.Options[0])
	assert.Equal(t, Option{Text: "rich", Image: "a/b.png", Rich: true}, b.Options[1])
	assert.Equal(t, Option{}, b.Options[2])
	assert.Equal(t, "cat.png", b.Options[3].Label())
}

func TestDecode_Aliases(t *testing.T) {
	t.Run("word_fill parts", func(t *testing.T) {
		q := Decode([]byte(`{"type":"word_fill","question":"Q","parts":["a ","b"],"answers":["x"]}`))
		assert.Equal(t, []string{"a ", "b"}, q.Body.(*WordFill).SentenceParts)
	})
	t.Run("list_pick items", func(t *testing.T) {
		q := Decode([]byte(`{"type":"list_pick","question":"Q","items":["a","b"],"answer":[1]}`))
		assert.Len(t, q.Body.(*ListPick).Options, 2)
	})
	t.Run("categorization_multiple items", func(t *testing.T) {
		q := Decode([]byte(`{"type":"categorization_multiple","question":"Q","items":["cat","dog"],"categories":["A"],"answer":{}}`))
		b := q.Body.(*CategorizationMultiple)
		assert.Equal(t, []Stimulus{{Text: "cat"}, {Text: "dog"}}, b.Stimuli)
	})
	t.Run("order_phrase words", func(t *testing.T) {
		q := Decode([]byte(`{"type":"order_phrase","question":"Q","words":["b","a"],"answer":["a","b"]}`))
		assert.Equal(t, []string{"b", "a"}, q.Body.(*OrderPhrase).PhraseShuffled)
	})
	t.Run("match_sentence left", func(t *testing.T) {
		q := Decode([]byte(`{"type":"match_sentence","question":"Q","pairs":[{"left":"one"},{"left":"two"}],"answer":{}}`))
		b := q.Body.(*MatchSentence)
		assert.Equal(t, "one", b.Pairs[0].Sentence)
		assert.Equal(t, []string{"one", "two"}, b.Choices(0))
	})
	t.Run("sequence_audio strings", func(t *testing.T) {
		q := Decode([]byte(`{"type":"sequence_audio","question":"Q","audio_options":["a",{"option":"b"}],"answer":[1,0]}`))
		assert.Equal(t, []string{"a", "b"}, q.Body.(*SequenceAudio).AudioOptions)
	})
	t.Run("image_tagging image", func(t *testing.T) {
		q := Decode([]byte(`{"type":"image_tagging","question":"Q","image":"body.png","tags":[],"answer":{}}`))
		assert.Equal(t, "body.png", q.Media.Image)
	})
}

func TestDecode_AnswerKeysWithPathSyntax(t *testing.T) {
	q := Decode([]byte(`{"type":"match_sentence","question":"Q",
		"pairs":[{"sentence":"A cat.","image_path":"pics/cat.png"}],
		"answer":{"cat.png":"A cat.","a.b*c?":"x"}}`))
	b := q.Body.(*MatchSentence)

	assert.Equal(t, "A cat.", b.Answer["cat.png"])
	assert.Equal(t, "x", b.Answer["a.b*c?"])
	got, ok := b.Expected(0)
	assert.True(t, ok)
	assert.Equal(t, "A cat.", got)
}

func TestDecode_ImageTaggingAlternatives(t *testing.T) {
	q := Decode([]byte(`{
		"type": "image_tagging",
		"question": "Tag it",
		"media": {"image": "front.png"},
		"tags": [{"id": "head", "label": "Head"}],
		"answer": {"head": [10, 20], "bad": [1]},
		"alternatives": [
			{"media": {"image": "back.png"}, "tags": [{"id": "tail", "label": "Tail"}], "answer": {"tail": [5, 6]}},
			{"image": "side.png"}
		]
	}`))
	b := q.Body.(*ImageTagging)

	assert.Equal(t, map[string]Point{"head": {10, 20}}, b.Answer)
	require.Len(t, b.Alternatives, 2)
	assert.Equal(t, 3, b.ViewCount())

	base := b.View(0, q.Media.Image)
	assert.Equal(t, "front.png", base.Image)

	back := b.View(1, q.Media.Image)
	assert.Equal(t, "back.png", back.Image)
	assert.Equal(t, "tail", back.Tags[0].ID)

	side := b.View(2, q.Media.Image)
	assert.Equal(t, "side.png", side.Image)
	assert.Equal(t, "head", side.Tags[0].ID, "alternative without tags inherits base tags")

	outOfRange := b.View(7, q.Media.Image)
	assert.Equal(t, "front.png", outOfRange.Image)
}

func TestDecode_CompositeNestsUnknown(t *testing.T) {
	q := Decode([]byte(`{"type":"multi_questions","questions":[
		{"type":"categorization","question":"Q","categories":["A","B"],"correct":"B"},
		{"type":"mystery","x":1}
	]}`))
	mq, ok := q.Body.(*MultiQuestions)
	require.True(t, ok)
	require.Len(t, mq.Questions, 2)
	assert.Equal(t, KindCategorization, mq.Questions[0].Kind())
	assert.Equal(t, KindUnknown, mq.Questions[1].Kind())
	assert.Equal(t, `{"type":"mystery","x":1}`, string(mq.Questions[1].Body.(*Unknown).Raw))
}
