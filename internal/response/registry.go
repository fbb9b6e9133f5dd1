package response

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/wifeymooc/quizkit/internal/question"
)

// BlockKey is the composite key of a top-level question.
func BlockKey(block int) string {
	return strconv.Itoa(block)
}

// InnerKey is the composite key of question inner within a
// multi_questions block.
func InnerKey(block, inner int) string {
	return fmt.Sprintf("%d-%d", block, inner)
}

// Registry maps composite keys to response states. Build one per render
// of a block and drop it when the block changes.
type Registry map[string]*State

var _ Source = Registry(nil)

// NewRegistry builds fresh states for the question at block index. Flat
// questions get one state under BlockKey; composite blocks get one per
// nested question under InnerKey so siblings of the same kind never share
// state.
func NewRegistry(block int, q question.Question) Registry {
	r := Registry{}
	if mq, ok := q.Body.(*question.MultiQuestions); ok {
		for i, sub := range mq.Questions {
			r[InnerKey(block, i)] = NewState(sub)
		}
		return r
	}
	r[BlockKey(block)] = NewState(q)
	return r
}

// Adapter implements Source.
func (r Registry) Adapter(key string) (Adapter, bool) {
	s, ok := r[key]
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// State returns the mutable state for key, creating it if absent.
func (r Registry) State(key string) *State {
	if s, ok := r[key]; ok && s != nil {
		return s
	}
	s := &State{}
	r[key] = s
	return s
}

// LoadRegistry reads a JSON object of composite key to State, the format
// used for recorded responses.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	r := Registry{}
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse responses %s: %w", path, err)
	}
	return r, nil
}

// Save writes the registry as indented JSON.
func (r Registry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write responses: %w", err)
	}
	return nil
}
