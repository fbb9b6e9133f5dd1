// Package session runs a practice pass over a question bank: blocks are
// graded on demand, every check is written to the event store, and the
// session keeps a running tally for its summary.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wifeymooc/quizkit/internal/grading"
	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
	"github.com/wifeymooc/quizkit/internal/store"
)

// Session is one practice pass. It is not safe for concurrent use.
type Session struct {
	ID string

	// BankName labels events, typically the bank file's base name.
	BankName string

	bank *question.Bank
	repo store.EventRepo
	now  func() time.Time

	started time.Time
	ended   bool

	checked int
	correct int
	kinds   map[question.Kind]*KindProgress
	order   []question.Kind
}

// New creates a session over bank with a fresh id. repo may be nil to
// skip event recording.
func New(bank *question.Bank, repo store.EventRepo) *Session {
	return &Session{
		ID:    uuid.New().String(),
		bank:  bank,
		repo:  repo,
		now:   time.Now,
		kinds: make(map[question.Kind]*KindProgress),
	}
}

// Start records the session start event.
func (s *Session) Start(ctx context.Context) error {
	s.started = s.now()
	if s.repo == nil {
		return nil
	}
	if err := s.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: s.ID,
		Action:    store.SessionStart,
		Bank:      s.BankName,
	}); err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// Check grades the block at index against the responses in src, records
// one grade event per graded question and updates the tally. A block
// counts as checked once per call; it counts as correct when the
// aggregate verdict is.
func (s *Session) Check(ctx context.Context, block int, src response.Source) (grading.Verdict, []grading.Result, error) {
	if s.ended {
		return grading.Verdict{}, nil, fmt.Errorf("session %s has ended", s.ID)
	}
	if block < 0 || block >= s.bank.Len() {
		return grading.Verdict{}, nil, fmt.Errorf("block %d out of range (%d blocks)", block, s.bank.Len())
	}
	if s.started.IsZero() {
		s.started = s.now()
	}

	q := s.bank.Questions[block]
	verdict, results := grading.Check(q, block, src)

	s.checked++
	if verdict.Correct {
		s.correct++
	}
	for _, r := range results {
		s.progress(r.Kind).Record(r.Verdict.Correct, r.Verdict.Status == grading.StatusIncomplete)
	}

	if s.repo != nil {
		for i, r := range results {
			if err := s.repo.AppendGradeEvent(ctx, s.gradeEvent(q, i, r)); err != nil {
				return verdict, results, fmt.Errorf("record grade event: %w", err)
			}
		}
	}
	return verdict, results, nil
}

// End records the session end event with the final tally and returns the
// summary. Further checks fail.
func (s *Session) End(ctx context.Context) (*Summary, error) {
	sum := s.Summary()
	if s.ended {
		return sum, nil
	}
	s.ended = true
	if s.repo == nil {
		return sum, nil
	}
	if err := s.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:        s.ID,
		Action:           store.SessionEnd,
		Bank:             s.BankName,
		QuestionsChecked: sum.Checked,
		CorrectCount:     sum.Correct,
		DurationSecs:     int(sum.Duration.Seconds()),
	}); err != nil {
		return sum, fmt.Errorf("record session end: %w", err)
	}
	return sum, nil
}

func (s *Session) progress(k question.Kind) *KindProgress {
	p, ok := s.kinds[k]
	if !ok {
		p = &KindProgress{Kind: k}
		s.kinds[k] = p
		s.order = append(s.order, k)
	}
	return p
}

// gradeEvent builds the event for the i-th result of a block. Results of a
// composite block follow its question order.
func (s *Session) gradeEvent(block question.Question, i int, r grading.Result) store.GradeEventData {
	prompt := block.Text
	if mq, ok := block.Body.(*question.MultiQuestions); ok && i < len(mq.Questions) {
		prompt = mq.Questions[i].Text
	}

	answer := ""
	if r.Verdict.Answer != nil {
		if b, err := json.Marshal(r.Verdict.Answer); err == nil {
			answer = string(b)
		}
	}
	return store.GradeEventData{
		SessionID: s.ID,
		Bank:      s.BankName,
		BlockKey:  r.Key,
		Kind:      string(r.Kind),
		Prompt:    prompt,
		Status:    string(r.Verdict.Status),
		Correct:   r.Verdict.Correct,
		Message:   r.Verdict.Message,
		Answer:    answer,
	}
}
