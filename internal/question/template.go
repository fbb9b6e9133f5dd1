package question

import "strconv"

// Template returns a new question of kind k filled with placeholder
// content, ready for editing. The second return value is false for
// KindUnknown and unrecognized kinds.
func Template(k Kind) (Question, bool) {
	switch k {
	case KindListPick:
		return Question{
			Text: "Pick every correct option.",
			Body: &ListPick{
				Options: []Option{{Text: "Option A"}, {Text: "Option B"}, {Text: "Option C"}},
				Answer:  []int{0},
			},
		}, true
	case KindMCQSingle:
		return Question{
			Text: "Choose the best answer.",
			Body: &MCQSingle{
				Options: richOptions("Option A", "Option B", "Option C"),
				Answer:  []int{0},
			},
		}, true
	case KindMCQMultiple:
		return Question{
			Text: "Pick all the right answers.",
			Body: &MCQMultiple{
				Options: richOptions("Option A", "Option B", "Option C"),
				Answer:  []int{0, 1},
			},
		}, true
	case KindWordFill:
		return Question{
			Text: "Fill in the blanks.",
			Body: &WordFill{
				SentenceParts: []string{"Fill this ", " with the right word ", "."},
				Answers:       []string{"blank", "please"},
			},
		}, true
	case KindMatchSentence:
		return Question{
			Text: "Match the sentences with the images.",
			Body: &MatchSentence{
				Pairs: []SentencePair{
					{Sentence: "Sentence 1", ImagePath: "image1.jpg"},
					{Sentence: "Sentence 2", ImagePath: "image2.jpg"},
				},
				Answer: map[string]string{"image1.jpg": "Sentence 1", "image2.jpg": "Sentence 2"},
			},
		}, true
	case KindCategorization:
		return Question{
			Text: "Which category fits?",
			Body: &Categorization{
				Categories: []string{" ", "Category A", "Category B"},
				Correct:    "Category A",
			},
		}, true
	case KindCategorizationMultiple:
		return Question{
			Text: "Categorize these items.",
			Body: &CategorizationMultiple{
				Stimuli:    []Stimulus{{Text: "Item 1"}, {Text: "Item 2"}},
				Categories: []string{" ", "Category A", "Category B"},
				Answer:     map[string]string{"Item 1": "Category A", "Item 2": "Category B"},
			},
		}, true
	case KindSequenceAudio:
		return Question{
			Text:  "Put these sounds in order.",
			Media: Media{Audio: "audio.mp3"},
			Body: &SequenceAudio{
				AudioOptions: []string{"First sound", "Second sound"},
				Answer:       []int{0, 1},
			},
		}, true
	case KindOrderPhrase:
		return Question{
			Text: "Put these phrases in the right order.",
			Body: &OrderPhrase{
				PhraseShuffled: []string{"Second phrase", "First phrase", "Third phrase"},
				Answer:         []string{"First phrase", "Second phrase", "Third phrase"},
			},
		}, true
	case KindFillBlanksDropdown:
		return Question{
			Text: "Choose from the dropdowns.",
			Body: &FillBlanksDropdown{
				SentenceParts: []string{"Choose ", " and then ", " from these dropdowns."},
				OptionsForBlanks: [][]string{
					{" ", "option1", "option2"},
					{" ", "choice1", "choice2"},
				},
				Answers: []string{"option1", "choice1"},
			},
		}, true
	case KindMatchPhrases:
		return Question{
			Text: "Match each beginning with its ending.",
			Body: &MatchPhrases{
				Pairs: []PhrasePair{{
					Source:  "Beginning of phrase 1...",
					Targets: []string{" ", "ending A", "ending B", "ending C"},
				}},
				Answer: map[string]string{"Beginning of phrase 1...": "ending A"},
			},
		}, true
	case KindImageTagging:
		return Question{
			Text:  "Tag the image.",
			Media: Media{Image: "body.jpg"},
			Body: &ImageTagging{
				ButtonLabel: "Alternative View",
				Tags:        []Tag{{ID: "tag1", Label: "Tag 1"}, {ID: "tag2", Label: "Tag 2"}},
				Answer: map[string]Point{
					"tag1": {X: 100, Y: 150},
					"tag2": {X: 200, Y: 250},
				},
				Alternatives: []TaggingAlternative{},
			},
		}, true
	case KindMultiQuestions:
		first, _ := Template(KindMCQSingle)
		second, _ := Template(KindMCQMultiple)
		first.Text = "First question."
		second.Text = "Second question."
		return Question{
			Body: &MultiQuestions{Questions: []Question{first, second}},
		}, true
	}
	return Question{}, false
}

// NewAlternative returns an alternative view seeded from the base tags,
// with every tag placed at the same default position.
func (t *ImageTagging) NewAlternative() TaggingAlternative {
	alt := TaggingAlternative{
		Image:       "alternative.jpg",
		ButtonLabel: "Alt View " + strconv.Itoa(len(t.Alternatives)+1),
		Tags:        make([]Tag, len(t.Tags)),
		Answer:      make(map[string]Point, len(t.Tags)),
	}
	copy(alt.Tags, t.Tags)
	for _, tag := range t.Tags {
		alt.Answer[tag.ID] = Point{X: 150, Y: 150}
	}
	return alt
}

func richOptions(texts ...string) []Option {
	out := make([]Option, len(texts))
	for i, t := range texts {
		out[i] = Option{Text: t, Image: "image" + strconv.Itoa(i+1) + ".jpg", Rich: true}
	}
	return out
}
