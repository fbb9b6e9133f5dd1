// Package lint checks a question bank for problems an author should fix:
// schema violations, authoring validation failures and missing media.
package lint

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/wifeymooc/quizkit/internal/media"
	"github.com/wifeymooc/quizkit/internal/question"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem in one question of a bank.
type Finding struct {
	Index    int // 0-based position in the bank
	Severity Severity
	Check    string // "schema", "media" or a validator name
	Path     string
	Message  string
}

func (f Finding) String() string {
	loc := fmt.Sprintf("question %d", f.Index+1)
	if f.Path != "" {
		loc += " " + f.Path
	}
	return fmt.Sprintf("%s: [%s] %s: %s", f.Severity, f.Check, loc, f.Message)
}

// Report collects findings for a bank.
type Report struct {
	Questions int
	Findings  []Finding
}

// Errors counts findings of error severity.
func (r *Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// OK reports whether the bank has no errors. Warnings do not fail it.
func (r *Report) OK() bool { return r.Errors() == 0 }

// Options tune a lint run.
type Options struct {
	// MediaDir is the base for relative media paths. Empty skips media
	// checks.
	MediaDir string

	// Validators replaces question.DefaultValidators when set.
	Validators []question.Validator
}

// File lints the bank at path.
func File(path string, opts Options) (*Report, error) {
	data, err := question.ReadBankFile(path)
	if err != nil {
		return nil, err
	}
	return Bytes(data, opts)
}

// Bytes lints a bank held in memory: a JSON array of questions or a single
// question object.
func Bytes(data []byte, opts Options) (*Report, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("JSON parse error")
	}
	doc := gjson.ParseBytes(data)
	var items []gjson.Result
	switch {
	case doc.IsArray():
		items = doc.Array()
	case doc.IsObject():
		items = []gjson.Result{doc}
	default:
		return nil, fmt.Errorf("expected a JSON array or object of questions")
	}

	rep := &Report{Questions: len(items)}
	for i, item := range items {
		fs, err := Question(i, []byte(item.Raw), opts)
		if err != nil {
			return nil, err
		}
		rep.Findings = append(rep.Findings, fs...)
	}
	sort.SliceStable(rep.Findings, func(a, b int) bool {
		return rep.Findings[a].Index < rep.Findings[b].Index
	})
	return rep, nil
}

// Question lints one raw question object found at index i of its bank.
func Question(i int, raw []byte, opts Options) ([]Finding, error) {
	var out []Finding
	if err := question.CheckSchema(raw); err != nil {
		out = append(out, Finding{Index: i, Severity: SeverityError, Check: "schema", Message: err.Error()})
	}

	q := question.Decode(raw)
	for _, e := range question.Validate(&q, opts.Validators...) {
		sev := SeverityError
		if q.Kind() == question.KindUnknown {
			// Unknown objects are preserved for manual editing, not rejected.
			sev = SeverityWarning
		}
		out = append(out, Finding{Index: i, Severity: sev, Check: e.Validator, Path: e.Path, Message: e.Message})
	}

	if opts.MediaDir != "" {
		missing, err := media.Missing(q, opts.MediaDir)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		for _, r := range missing {
			out = append(out, Finding{
				Index:    i,
				Severity: SeverityWarning,
				Check:    "media",
				Path:     r.Field,
				Message:  fmt.Sprintf("file not found: %s", media.Resolve(r.Path, opts.MediaDir)),
			})
		}
	}
	return out, nil
}
