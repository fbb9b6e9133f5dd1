package session

import "time"

// Summary holds the tally shown when a session ends.
type Summary struct {
	SessionID string
	Bank      string
	Duration  time.Duration
	Checked   int // blocks checked
	Correct   int // blocks answered correctly
	Accuracy  float64
	Kinds     []KindProgress // per question kind, in first-seen order
}

// Summary returns the current tally.
func (s *Session) Summary() *Summary {
	kinds := make([]KindProgress, 0, len(s.order))
	for _, k := range s.order {
		kinds = append(kinds, *s.kinds[k])
	}

	var accuracy float64
	if s.checked > 0 {
		accuracy = float64(s.correct) / float64(s.checked)
	}
	var elapsed time.Duration
	if !s.started.IsZero() {
		elapsed = s.now().Sub(s.started)
	}
	return &Summary{
		SessionID: s.ID,
		Bank:      s.BankName,
		Duration:  elapsed,
		Checked:   s.checked,
		Correct:   s.correct,
		Accuracy:  accuracy,
		Kinds:     kinds,
	}
}
