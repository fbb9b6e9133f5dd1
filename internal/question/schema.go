package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

// Per-kind JSON Schemas for the authored file format. They are stricter
// than Decode: Decode coerces, the schemas report what it had to coerce.
// Decode aliases (parts, items, words, left) are accepted.

var (
	nullableString = map[string]any{"type": []any{"string", "null"}}

	stringArray = map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	indexArray = map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "integer", "minimum": 0},
	}

	optionArray = map[string]any{
		"type": "array",
		"items": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":  nullableString,
						"image": nullableString,
					},
				},
			},
		},
	}

	stringMap = map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}

	pointMapSchema = map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "number"},
			"minItems": 2,
			"maxItems": 2,
		},
	}

	mediaSchema = map[string]any{
		"type": []any{"object", "null"},
		"properties": map[string]any{
			"audio": nullableString,
			"video": nullableString,
			"image": nullableString,
		},
	}

	tagArray = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":    map[string]any{"type": "string", "minLength": 1},
				"label": map[string]any{"type": "string"},
			},
			"required": []any{"id"},
		},
	}
)

// kindSchema returns the schema definition for kind k.
func kindSchema(k Kind) map[string]any {
	props := map[string]any{
		"type":     map[string]any{"const": string(k)},
		"question": map[string]any{"type": "string"},
		"media":    mediaSchema,
	}
	required := []any{"type", "question"}

	switch k {
	case KindListPick:
		props["options"] = optionArray
		props["items"] = optionArray
		props["answer"] = indexArray
		required = append(required, "answer")
	case KindMCQSingle, KindMCQMultiple:
		props["options"] = optionArray
		props["answer"] = indexArray
		required = append(required, "options", "answer")
	case KindWordFill:
		props["sentence_parts"] = stringArray
		props["parts"] = stringArray
		props["answers"] = stringArray
		required = append(required, "answers")
	case KindMatchSentence:
		props["pairs"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sentence":   map[string]any{"type": "string"},
					"left":       map[string]any{"type": "string"},
					"image_path": nullableString,
					"options":    stringArray,
				},
			},
		}
		props["answer"] = stringMap
		required = append(required, "pairs", "answer")
	case KindCategorization:
		props["categories"] = stringArray
		props["correct"] = map[string]any{"type": "string"}
		required = append(required, "categories", "correct")
	case KindCategorizationMultiple:
		stim := map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text":  nullableString,
							"image": nullableString,
						},
					},
				},
			},
		}
		props["stimuli"] = stim
		props["items"] = stim
		props["categories"] = stringArray
		props["answer"] = stringMap
		required = append(required, "categories", "answer")
	case KindSequenceAudio:
		props["audio_options"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{
						"type":       "object",
						"properties": map[string]any{"option": map[string]any{"type": "string"}},
					},
				},
			},
		}
		props["answer"] = indexArray
		required = append(required, "audio_options", "answer")
	case KindOrderPhrase:
		props["phrase_shuffled"] = stringArray
		props["words"] = stringArray
		props["answer"] = stringArray
		required = append(required, "answer")
	case KindFillBlanksDropdown:
		props["sentence_parts"] = stringArray
		props["options_for_blanks"] = map[string]any{"type": "array", "items": stringArray}
		props["answers"] = stringArray
		required = append(required, "sentence_parts", "options_for_blanks", "answers")
	case KindMatchPhrases:
		props["pairs"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"source":  map[string]any{"type": "string"},
					"targets": stringArray,
				},
				"required": []any{"source", "targets"},
			},
		}
		props["answer"] = stringMap
		required = append(required, "pairs", "answer")
	case KindImageTagging:
		props["image"] = map[string]any{"type": "string"}
		props["button_label"] = map[string]any{"type": "string"}
		props["tags"] = tagArray
		props["answer"] = pointMapSchema
		props["alternatives"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"media":        mediaSchema,
					"image":        map[string]any{"type": "string"},
					"button_label": map[string]any{"type": "string"},
					"tags":         tagArray,
					"answer":       pointMapSchema,
				},
			},
		}
		required = append(required, "tags", "answer")
	case KindMultiQuestions:
		props["questions"] = map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "object"},
			"minItems": 1,
		}
		required = []any{"type", "questions"}
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

var compiledSchemas sync.Map // map[Kind]*jsonschema.Schema

func compiledSchema(k Kind) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(k); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees plain decoded values.
	defBytes, err := json.Marshal(kindSchema(k))
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", k, err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", k, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://question/%s.json", k)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", k, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", k, err)
	}
	compiledSchemas.Store(k, compiled)
	return compiled, nil
}

// CheckSchema validates a raw question object against its kind's schema.
// Composite blocks are checked recursively. Objects of unknown type are
// skipped; reporting them is the structural validator's job.
func CheckSchema(raw []byte) error {
	r := gjson.ParseBytes(raw)
	if !r.IsObject() {
		return fmt.Errorf("question is not a JSON object")
	}
	kind, ok := ParseKind(r.Get("type").String())
	if !ok {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s schema: %w", kind, err)
	}

	if kind == KindMultiQuestions {
		for i, sub := range r.Get("questions").Array() {
			if err := CheckSchema([]byte(sub.Raw)); err != nil {
				return fmt.Errorf("questions[%d]: %w", i, err)
			}
		}
	}
	return nil
}
