package authoring

import (
	"github.com/wifeymooc/quizkit/internal/llm"
	"github.com/wifeymooc/quizkit/internal/question"
)

// DraftKinds are the kinds a draft may be converted to.
var DraftKinds = []question.Kind{
	question.KindMCQSingle,
	question.KindMCQMultiple,
	question.KindListPick,
	question.KindWordFill,
	question.KindFillBlanksDropdown,
	question.KindOrderPhrase,
	question.KindCategorizationMultiple,
}

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func draftKindEnum() []any {
	out := make([]any, len(DraftKinds))
	for i, k := range DraftKinds {
		out[i] = string(k)
	}
	return out
}

// DraftsSchema is the response shape requested from the model. Every field
// is required so strict structured-output modes accept it; fields a kind
// does not use are sent empty.
var DraftsSchema = &llm.Schema{
	Name:        "question-drafts",
	Description: "A batch of quiz question drafts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"drafts": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type":        "string",
							"enum":        draftKindEnum(),
							"description": "The question format",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The prompt shown to the learner",
						},
						"answers":        stringArray("Correct texts: the right option(s), the blank fillers in order, or the phrase chunks in the correct order"),
						"distractors":    stringArray("Plausible wrong options for mcq_single, mcq_multiple and list_pick"),
						"sentence_parts": stringArray("For word_fill and fill_blanks_dropdown: the sentence split around the blanks, one more part than blanks"),
						"options_for_blanks": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"description": "For fill_blanks_dropdown: the choices of each blank, including the correct one",
						},
						"categories": stringArray("For categorization_multiple: the category names"),
						"assignments": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"item":     map[string]any{"type": "string"},
									"category": map[string]any{"type": "string"},
								},
								"required":             []any{"item", "category"},
								"additionalProperties": false,
							},
							"description": "For categorization_multiple: each item with its correct category",
						},
					},
					"required": []any{
						"kind", "question", "answers", "distractors", "sentence_parts",
						"options_for_blanks", "categories", "assignments",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"drafts"},
		"additionalProperties": false,
	},
}
