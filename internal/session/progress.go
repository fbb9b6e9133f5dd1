package session

import "github.com/wifeymooc/quizkit/internal/question"

// KindProgress tracks results for one question kind within a session.
type KindProgress struct {
	Kind       question.Kind
	Attempts   int
	Correct    int
	Incomplete int
	Accuracy   float64 // Correct / Attempts (computed)
}

// Record adds one graded question to the progress.
func (p *KindProgress) Record(correct, incomplete bool) {
	p.Attempts++
	if correct {
		p.Correct++
	}
	if incomplete {
		p.Incomplete++
	}
	p.Accuracy = float64(p.Correct) / float64(p.Attempts)
}
