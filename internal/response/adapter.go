// Package response holds the learner's live input for a rendered question
// and exposes it to the grader through the Adapter interface.
package response

import "github.com/wifeymooc/quizkit/internal/question"

// Adapter is the read side of a question's response state. Each accessor
// serves specific kinds; accessors irrelevant to a kind return zero values.
type Adapter interface {
	// SelectedIndices returns the checked options (list_pick, mcq_multiple).
	SelectedIndices() []int

	// SelectedIndex returns the single checked option (mcq_single). The
	// second value is false when nothing is selected.
	SelectedIndex() (int, bool)

	// TextEntries returns the typed text per blank (word_fill).
	TextEntries() []string

	// RowSelections returns the chosen text per row or blank
	// (match_sentence, categorization_multiple, match_phrases,
	// fill_blanks_dropdown).
	RowSelections() []string

	// DisplayedOrder returns phrase labels in their current order
	// (order_phrase).
	DisplayedOrder() []string

	// ChosenCategory returns the selected category (categorization).
	ChosenCategory() string

	// SequenceOrders returns the 1-based order set per audio option; 0
	// means unset (sequence_audio).
	SequenceOrders() []int

	// ActiveAlternative returns the image_tagging view being shown: 0 for
	// the base view, 1..N for alternatives.
	ActiveAlternative() int

	// TagPosition returns where tag id was placed in view alt, in image
	// coordinates. The second value is false if the tag was never placed.
	TagPosition(alt int, id string) (question.Point, bool)
}

// Source resolves the adapter for a composite key such as "3" or "3-1".
type Source interface {
	Adapter(key string) (Adapter, bool)
}

// Unplaced is the position reported for a tag that was never dropped on
// the image.
var Unplaced = question.Point{X: -1, Y: -1}
