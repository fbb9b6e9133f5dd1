package session

import sess "github.com/wifeymooc/quizkit/internal/session"

// sessionEndMsg triggers the session end flow.
type sessionEndMsg struct{}

// sessionEndedMsg carries the final tally after the end event is recorded.
type sessionEndedMsg struct {
	Summary *sess.Summary
	Err     error
}
