package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// summaryWidth is the rune limit of a prompt in a bank list label.
const summaryWidth = 35

// Bank is an ordered collection of questions, persisted as a JSON array.
type Bank struct {
	Questions []Question
}

// LoadBank reads a bank from path. JSON files may hold an array of
// question objects or a single object; .yaml and .yml files are converted
// to JSON first. Each question is decoded with Decode's coercion rules;
// structural problems are returned as warnings rather than errors.
func LoadBank(path string) (*Bank, []string, error) {
	data, err := ReadBankFile(path)
	if err != nil {
		return nil, nil, err
	}
	bank, err := ParseBank(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return bank, bank.Warnings(), nil
}

// ReadBankFile returns the JSON content of a bank file, converting YAML
// files by extension.
func ReadBankFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return data, nil
}

// ParseBank decodes a JSON array of questions or a single question object.
func ParseBank(data []byte) (*Bank, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("JSON parse error")
	}
	r := gjson.ParseBytes(data)
	b := &Bank{Questions: []Question{}}
	switch {
	case r.IsArray():
		for _, v := range r.Array() {
			b.Questions = append(b.Questions, DecodeValue(v))
		}
	case r.IsObject():
		b.Questions = append(b.Questions, Decode(data))
	default:
		return nil, fmt.Errorf("expected a JSON array or object of questions")
	}
	return b, nil
}

// yamlToJSON converts a YAML document into equivalent JSON.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml to json: %w", err)
	}
	return out, nil
}

// Warnings reports structural problems per question: missing prompt and
// unsupported type. They never block loading.
func (b *Bank) Warnings() []string {
	var out []string
	v := &StructuralValidator{}
	for i := range b.Questions {
		for _, e := range v.Validate(&b.Questions[i]) {
			out = append(out, fmt.Sprintf("question %d: %s", i+1, e.Message))
		}
	}
	return out
}

// Save writes the bank to path as an indented JSON array. Unknown
// objects are written exactly as they were read.
func (b *Bank) Save(path string) error {
	data, err := b.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}

// Marshal encodes the bank as an indented JSON array.
func (b *Bank) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, q := range b.Questions {
		enc, err := encodeIndent(q, "  ")
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(enc)
	}
	if len(b.Questions) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.Questions) }

// Add appends q and returns its index.
func (b *Bank) Add(q Question) int {
	b.Questions = append(b.Questions, q)
	return len(b.Questions) - 1
}

// Delete removes question i.
func (b *Bank) Delete(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.Questions = append(b.Questions[:i], b.Questions[i+1:]...)
	return nil
}

// MoveUp swaps question i with its predecessor. Moving the first
// question is a no-op.
func (b *Bank) MoveUp(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	if i > 0 {
		b.Questions[i-1], b.Questions[i] = b.Questions[i], b.Questions[i-1]
	}
	return nil
}

// MoveDown swaps question i with its successor. Moving the last
// question is a no-op.
func (b *Bank) MoveDown(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	if i < len(b.Questions)-1 {
		b.Questions[i+1], b.Questions[i] = b.Questions[i], b.Questions[i+1]
	}
	return nil
}

// Summary returns the list label for question i, e.g.
// "[mcq_single] Choose the best answer." or
// "[multi_questions] Multi-Block (2 questions)".
func (b *Bank) Summary(i int) string {
	if i < 0 || i >= len(b.Questions) {
		return ""
	}
	return Summary(b.Questions[i])
}

// Summary returns the list label for a single question. Prompts longer
// than 35 runes are cut with an ellipsis.
func Summary(q Question) string {
	kind := string(q.Kind())
	text := q.Text
	switch body := q.Body.(type) {
	case *MultiQuestions:
		text = fmt.Sprintf("Multi-Block (%d questions)", len(body.Questions))
	case *Unknown:
		if body.TypeName != "" {
			kind = body.TypeName
		}
		text = gjson.GetBytes(body.Raw, "question").String()
	}
	if text == "" {
		text = "No question text"
	}
	if r := []rune(text); len(r) > summaryWidth {
		text = string(r[:summaryWidth]) + "..."
	}
	return fmt.Sprintf("[%s] %s", kind, text)
}

// Prompts returns the prompt of every question, nested ones included.
func (b *Bank) Prompts() []string {
	var out []string
	var walk func(qs []Question)
	walk = func(qs []Question) {
		for _, q := range qs {
			if mq, ok := q.Body.(*MultiQuestions); ok {
				walk(mq.Questions)
				continue
			}
			if q.Text != "" {
				out = append(out, q.Text)
			}
		}
	}
	walk(b.Questions)
	return out
}

func (b *Bank) check(i int) error {
	if i < 0 || i >= len(b.Questions) {
		return fmt.Errorf("question %d out of range (%d questions)", i, len(b.Questions))
	}
	return nil
}
