//go:build cucumber

package grading

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
)

// TestGradingScenarios runs the grading feature scenarios.
func TestGradingScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "grading",
		ScenarioInitializer: InitializeGradingScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "features")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeGradingScenario wires steps for grading scenarios.
func InitializeGradingScenario(ctx *godog.ScenarioContext) {
	state := &gradingScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the question:$`, state.givenQuestion)
	ctx.Step(`^the learner selects options? ([\d,]+)$`, state.whenSelect)
	ctx.Step(`^the learner types "([^"]*)" and "([^"]*)"$`, state.whenType)
	ctx.Step(`^the learner moves phrase (\d+) up$`, state.whenMoveUp)
	ctx.Step(`^the learner drops tag "([^"]+)" at (-?\d+),(-?\d+)$`, state.whenDrop)
	ctx.Step(`^the learner orders the clips ([\d,]+)$`, state.whenOrder)
	ctx.Step(`^the learner chooses "([^"]*)" for every row$`, state.whenChooseAll)
	ctx.Step(`^the learner selects option (\d+) in question (\d+) of the block$`, state.whenSelectInBlock)
	ctx.Step(`^the verdict is "([^"]+)"$`, state.thenStatus)
	ctx.Step(`^the message is "([^"]*)"$`, state.thenMessage)
	ctx.Step(`^(\d+) questions? (?:was|were) graded$`, state.thenGraded)
}

type gradingScenarioState struct {
	q       question.Question
	reg     response.Registry
	verdict Verdict
	results []Result
}

// reset clears scenario state.
func (s *gradingScenarioState) reset() {
	s.q = question.Question{}
	s.reg = nil
	s.verdict = Verdict{}
	s.results = nil
}

// givenQuestion decodes the question under test and builds fresh state.
func (s *gradingScenarioState) givenQuestion(doc *godog.DocString) error {
	s.q = question.Decode([]byte(doc.Content))
	if s.q.Kind() == question.KindUnknown {
		return fmt.Errorf("question did not decode: %s", doc.Content)
	}
	s.reg = response.NewRegistry(0, s.q)
	return nil
}

func (s *gradingScenarioState) flat() *response.State {
	return s.reg.State(response.BlockKey(0))
}

// whenSelect replaces the selection with the listed indices.
func (s *gradingScenarioState) whenSelect(list string) error {
	idx, err := ints(list)
	if err != nil {
		return err
	}
	st := s.flat()
	st.Picked = nil
	for _, i := range idx {
		st.Toggle(i)
	}
	return nil
}

// whenType fills the first two blanks.
func (s *gradingScenarioState) whenType(first, second string) error {
	st := s.flat()
	if err := st.SetEntry(0, first); err != nil {
		return err
	}
	return st.SetEntry(1, second)
}

// whenMoveUp swaps a displayed phrase with its predecessor.
func (s *gradingScenarioState) whenMoveUp(i int) error {
	s.flat().MoveUp(i)
	return nil
}

// whenDrop places a tag in the base view.
func (s *gradingScenarioState) whenDrop(id string, x, y int) error {
	s.flat().SetTagPosition(0, id, question.Point{X: float64(x), Y: float64(y)})
	return nil
}

// whenOrder sets the 1-based order of every clip; 0 leaves one unset.
func (s *gradingScenarioState) whenOrder(list string) error {
	orders, err := ints(list)
	if err != nil {
		return err
	}
	st := s.flat()
	for i, o := range orders {
		if err := st.SetSequence(i, o); err != nil {
			return err
		}
	}
	return nil
}

// whenChooseAll picks the same value in every row.
func (s *gradingScenarioState) whenChooseAll(v string) error {
	st := s.flat()
	for i := range st.Selections {
		if err := st.SetSelection(i, v); err != nil {
			return err
		}
	}
	return nil
}

// whenSelectInBlock selects an option of a nested question.
func (s *gradingScenarioState) whenSelectInBlock(option, inner int) error {
	s.reg.State(response.InnerKey(0, inner)).Select(option)
	return nil
}

// check grades the current state.
func (s *gradingScenarioState) check() {
	s.verdict, s.results = Check(s.q, 0, s.reg)
}

// thenStatus asserts the verdict status.
func (s *gradingScenarioState) thenStatus(want string) error {
	s.check()
	if string(s.verdict.Status) != want {
		return fmt.Errorf("status = %s (%q), want %s", s.verdict.Status, s.verdict.Message, want)
	}
	return nil
}

// thenMessage asserts the verdict message.
func (s *gradingScenarioState) thenMessage(want string) error {
	if s.verdict.Message != want {
		return fmt.Errorf("message = %q, want %q", s.verdict.Message, want)
	}
	return nil
}

// thenGraded asserts how many questions the dispatcher graded.
func (s *gradingScenarioState) thenGraded(n int) error {
	if len(s.results) != n {
		return fmt.Errorf("graded %d questions, want %d", len(s.results), n)
	}
	return nil
}

func ints(list string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", list, err)
		}
		out = append(out, n)
	}
	return out, nil
}
