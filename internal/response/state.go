package response

import (
	"fmt"
	"slices"

	"github.com/wifeymooc/quizkit/internal/question"
)

// State is the concrete, serializable response state for one question.
// Front ends write it through the setters as the learner interacts; the
// grader reads it through Adapter. It is single-writer and not safe for
// concurrent mutation.
type State struct {
	Picked      []int                             `json:"picked,omitempty"`
	Entries     []string                          `json:"entries,omitempty"`
	Selections  []string                          `json:"selections,omitempty"`
	Order       []string                          `json:"order,omitempty"`
	Category    string                            `json:"category,omitempty"`
	Orders      []int                             `json:"orders,omitempty"`
	Alternative int                               `json:"alternative,omitempty"`
	Tags        map[int]map[string]question.Point `json:"tags,omitempty"`
}

var _ Adapter = (*State)(nil)

// NewState returns an empty state shaped for q: one slot per blank or
// row, phrases in their shuffled order, and every audio order unset.
// Composite questions get an empty state; use NewRegistry for them.
func NewState(q question.Question) *State {
	s := &State{}
	switch b := q.Body.(type) {
	case *question.WordFill:
		s.Entries = make([]string, b.Blanks())
	case *question.FillBlanksDropdown:
		s.Selections = make([]string, b.Blanks())
	case *question.MatchSentence:
		s.Selections = make([]string, len(b.Pairs))
	case *question.CategorizationMultiple:
		s.Selections = make([]string, len(b.Stimuli))
	case *question.MatchPhrases:
		s.Selections = make([]string, len(b.Pairs))
	case *question.OrderPhrase:
		s.Order = slices.Clone(b.PhraseShuffled)
	case *question.SequenceAudio:
		s.Orders = make([]int, len(b.AudioOptions))
	}
	return s
}

func (s *State) SelectedIndices() []int {
	out := slices.Clone(s.Picked)
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *State) SelectedIndex() (int, bool) {
	if len(s.Picked) == 0 {
		return 0, false
	}
	return s.Picked[0], true
}

func (s *State) TextEntries() []string    { return s.Entries }
func (s *State) RowSelections() []string  { return s.Selections }
func (s *State) DisplayedOrder() []string { return s.Order }
func (s *State) ChosenCategory() string   { return s.Category }
func (s *State) SequenceOrders() []int    { return s.Orders }
func (s *State) ActiveAlternative() int   { return s.Alternative }

func (s *State) TagPosition(alt int, id string) (question.Point, bool) {
	p, ok := s.Tags[alt][id]
	return p, ok
}

// Select makes i the only selected option (radio behavior).
func (s *State) Select(i int) {
	s.Picked = []int{i}
}

// Toggle flips option i (checkbox behavior).
func (s *State) Toggle(i int) {
	if j := slices.Index(s.Picked, i); j >= 0 {
		s.Picked = slices.Delete(s.Picked, j, j+1)
		return
	}
	s.Picked = append(s.Picked, i)
}

// SetEntry records the text typed into blank i.
func (s *State) SetEntry(i int, text string) error {
	if i < 0 || i >= len(s.Entries) {
		return fmt.Errorf("blank %d out of range (%d blanks)", i, len(s.Entries))
	}
	s.Entries[i] = text
	return nil
}

// SetSelection records the choice made for row or blank i.
func (s *State) SetSelection(i int, text string) error {
	if i < 0 || i >= len(s.Selections) {
		return fmt.Errorf("row %d out of range (%d rows)", i, len(s.Selections))
	}
	s.Selections[i] = text
	return nil
}

// SetCategory records the chosen category.
func (s *State) SetCategory(c string) {
	s.Category = c
}

// SetSequence records the 1-based order for audio option i; 0 clears it.
func (s *State) SetSequence(i, order int) error {
	if i < 0 || i >= len(s.Orders) {
		return fmt.Errorf("audio option %d out of range (%d options)", i, len(s.Orders))
	}
	if order < 0 || order > len(s.Orders) {
		return fmt.Errorf("order %d out of range 0..%d", order, len(s.Orders))
	}
	s.Orders[i] = order
	return nil
}

// MoveUp swaps phrase i with the one above it. The first phrase stays put.
func (s *State) MoveUp(i int) {
	if i > 0 && i < len(s.Order) {
		s.Order[i-1], s.Order[i] = s.Order[i], s.Order[i-1]
	}
}

// MoveDown swaps phrase i with the one below it. The last phrase stays put.
func (s *State) MoveDown(i int) {
	if i >= 0 && i < len(s.Order)-1 {
		s.Order[i+1], s.Order[i] = s.Order[i], s.Order[i+1]
	}
}

// SetAlternative switches the image_tagging view. Positions already placed
// in other views are kept.
func (s *State) SetAlternative(alt int) {
	s.Alternative = alt
}

// SetTagPosition records where tag id was dropped in view alt, in image
// coordinates.
func (s *State) SetTagPosition(alt int, id string, p question.Point) {
	if s.Tags == nil {
		s.Tags = map[int]map[string]question.Point{}
	}
	if s.Tags[alt] == nil {
		s.Tags[alt] = map[string]question.Point{}
	}
	s.Tags[alt][id] = p
}
