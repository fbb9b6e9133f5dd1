package question

// Kind is the discriminant stored in a question's "type" field.
type Kind string

const (
	KindListPick               Kind = "list_pick"
	KindMCQSingle              Kind = "mcq_single"
	KindMCQMultiple            Kind = "mcq_multiple"
	KindWordFill               Kind = "word_fill"
	KindMatchSentence          Kind = "match_sentence"
	KindCategorization         Kind = "categorization"
	KindCategorizationMultiple Kind = "categorization_multiple"
	KindSequenceAudio          Kind = "sequence_audio"
	KindOrderPhrase            Kind = "order_phrase"
	KindFillBlanksDropdown     Kind = "fill_blanks_dropdown"
	KindMatchPhrases           Kind = "match_phrases"
	KindImageTagging           Kind = "image_tagging"

	// KindMultiQuestions is the composite kind. Its body is an ordered list
	// of flat questions graded as a conjunction.
	KindMultiQuestions Kind = "multi_questions"

	// KindUnknown marks any object whose "type" is missing or unrecognized.
	// It is never written to the "type" field.
	KindUnknown Kind = "unknown"
)

var flatKinds = []Kind{
	KindListPick,
	KindMCQSingle,
	KindMCQMultiple,
	KindWordFill,
	KindMatchSentence,
	KindCategorization,
	KindCategorizationMultiple,
	KindSequenceAudio,
	KindOrderPhrase,
	KindFillBlanksDropdown,
	KindMatchPhrases,
	KindImageTagging,
}

var displayNames = map[Kind]string{
	KindListPick:               "List Pick",
	KindMCQSingle:              "Single Choice",
	KindMCQMultiple:            "Multiple Choice",
	KindWordFill:               "Word Fill",
	KindMatchSentence:          "Match Sentence",
	KindCategorization:         "Categorization",
	KindCategorizationMultiple: "Multiple Categorization",
	KindSequenceAudio:          "Audio Sequence",
	KindOrderPhrase:            "Order Phrase",
	KindFillBlanksDropdown:     "Dropdown Blanks",
	KindMatchPhrases:           "Match Phrases",
	KindImageTagging:           "Image Tagging",
	KindMultiQuestions:         "Multi-Block",
	KindUnknown:                "Unknown",
}

// FlatKinds returns every gradable non-composite kind in declaration order.
func FlatKinds() []Kind {
	out := make([]Kind, len(flatKinds))
	copy(out, flatKinds)
	return out
}

// AllKinds returns every kind that can appear in a "type" field.
func AllKinds() []Kind {
	return append(FlatKinds(), KindMultiQuestions)
}

// ParseKind maps a "type" string to a known Kind. The second return value
// is false for anything that would decode as KindUnknown.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	if k == KindMultiQuestions {
		return k, true
	}
	for _, f := range flatKinds {
		if f == k {
			return k, true
		}
	}
	return KindUnknown, false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	if n, ok := displayNames[k]; ok {
		return n
	}
	return string(k)
}

// IsComposite reports whether the kind nests other questions.
func (k Kind) IsComposite() bool {
	return k == KindMultiQuestions
}

// IsGradable reports whether answers to this kind can be evaluated.
func (k Kind) IsGradable() bool {
	return k != KindUnknown
}
