package grading

import (
	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
)

// Result is the verdict for one question graded by Check, keyed the way
// its response state is keyed.
type Result struct {
	Key     string
	Kind    question.Kind
	Verdict Verdict
}

// Check grades the question at block index, looking up response state in
// src. A flat question uses key "<block>". A multi_questions block grades
// its questions in order under "<block>-<inner>" and stops at the first
// one that does not pass; the aggregate carries that question's status and
// message only. A block whose questions all pass is correct with no
// message.
//
// The returned results list every question actually graded, in order.
func Check(q question.Question, block int, src response.Source) (Verdict, []Result) {
	mq, ok := q.Body.(*question.MultiQuestions)
	if !ok {
		key := response.BlockKey(block)
		v := Evaluate(q, lookup(src, key))
		return v, []Result{{Key: key, Kind: q.Kind(), Verdict: v}}
	}
	if len(mq.Questions) == 0 {
		return ungradable("Block has no questions."), nil
	}

	results := make([]Result, 0, len(mq.Questions))
	for i, sub := range mq.Questions {
		key := response.InnerKey(block, i)
		var v Verdict
		if sub.Kind() == question.KindMultiQuestions {
			v = ungradable("Nested multi_questions blocks are not supported.")
		} else {
			v = Evaluate(sub, lookup(src, key))
		}
		results = append(results, Result{Key: key, Kind: sub.Kind(), Verdict: v})
		if !v.Correct {
			return Verdict{Status: v.Status, Message: v.Message}, results
		}
	}
	return correct(nil), results
}

func lookup(src response.Source, key string) response.Adapter {
	if src == nil {
		return nil
	}
	a, ok := src.Adapter(key)
	if !ok {
		return nil
	}
	return a
}
