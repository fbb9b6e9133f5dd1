// Package grading compares a learner's response with the answer key
// embedded in a question.
package grading

// Status classifies a verdict.
type Status string

const (
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
	StatusIncomplete Status = "incomplete"
	StatusUngradable Status = "ungradable"
)

// Verdict is the outcome of checking one question or block.
type Verdict struct {
	Status  Status
	Correct bool

	// Answer is the learner's response normalized for feedback: trimmed
	// entries, 0-based orders, key-to-selection maps, placed positions.
	Answer any

	// Message is empty on success.
	Message string
}

func correct(answer any) Verdict {
	return Verdict{Status: StatusCorrect, Correct: true, Answer: answer}
}

func incorrect(answer any, msg string) Verdict {
	return Verdict{Status: StatusIncorrect, Answer: answer, Message: msg}
}

func incomplete(answer any, msg string) Verdict {
	return Verdict{Status: StatusIncomplete, Answer: answer, Message: msg}
}

func ungradable(msg string) Verdict {
	return Verdict{Status: StatusUngradable, Message: msg}
}

// judge returns a correct verdict when ok, otherwise an incorrect one
// carrying msg.
func judge(ok bool, answer any, msg string) Verdict {
	if ok {
		return correct(answer)
	}
	return incorrect(answer, msg)
}
