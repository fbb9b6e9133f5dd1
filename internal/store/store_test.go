package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixClock pins the event clock, advancing one minute per event.
func fixClock(t *testing.T) time.Time {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := base
	orig := now
	now = func() time.Time {
		cur := tick
		tick = tick.Add(time.Minute)
		return cur
	}
	t.Cleanup(func() { now = orig })
	return base
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALOnFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "quizkit.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range append(eventTables(), "global_sequence") {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrationFollowsEntSchema(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query("SELECT name, \"notnull\", dflt_value FROM pragma_table_info('grade_events')")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	cols := map[string]string{}
	for rows.Next() {
		var (
			name    string
			notNull int
			dflt    sql.NullString
		)
		if err := rows.Scan(&name, &notNull, &dflt); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = dflt.String
	}
	for _, want := range gradeColumns {
		if _, ok := cols[want]; !ok {
			t.Errorf("grade_events missing column %s", want)
		}
	}
	if cols["message"] != "''" {
		t.Errorf("message default = %q, want ''", cols["message"])
	}

	var idx string
	err = s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='grade_events_session_id'",
	).Scan(&idx)
	if err != nil {
		t.Errorf("session index: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestGradeEvents(t *testing.T) {
	s := openTestStore(t)
	base := fixClock(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GradeEventData{
		{SessionID: "a", BlockKey: "0", Kind: "mcq_single", Status: "correct", Correct: true, Answer: "1"},
		{SessionID: "a", BlockKey: "1-0", Kind: "word_fill", Status: "incorrect", Message: "Some answers are incorrect.", Answer: `["x"]`},
		{SessionID: "b", BlockKey: "0", Kind: "mcq_single", Status: "incomplete", Message: "Please select an answer."},
	}
	for _, e := range events {
		if err := repo.AppendGradeEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryGradeEvents(ctx, "a", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events for session a, want 2", len(got))
	}
	// Newest first.
	if got[0].BlockKey != "1-0" || got[1].BlockKey != "0" {
		t.Errorf("order = %s, %s", got[0].BlockKey, got[1].BlockKey)
	}
	if got[0].Message != "Some answers are incorrect." || got[0].Answer != `["x"]` {
		t.Errorf("event round trip = %+v", got[0])
	}
	if !got[1].Correct {
		t.Error("expected first event to be correct")
	}
	if !got[1].Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", got[1].Timestamp, base)
	}

	all, err := repo.QueryGradeEvents(ctx, "", QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 1 || all[0].SessionID != "b" {
		t.Errorf("limit 1 = %+v", all)
	}

	window, err := repo.QueryGradeEvents(ctx, "", QueryOpts{After: 1, From: base.Add(time.Minute), To: base.Add(time.Minute)})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(window) != 1 || window[0].BlockKey != "1-0" {
		t.Errorf("window = %+v", window)
	}
}

func TestKindStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []GradeEventData{
		{SessionID: "a", BlockKey: "0", Kind: "mcq_single", Status: "correct", Correct: true},
		{SessionID: "a", BlockKey: "1", Kind: "mcq_single", Status: "incomplete"},
		{SessionID: "a", BlockKey: "2", Kind: "mcq_single", Status: "correct", Correct: true},
		{SessionID: "a", BlockKey: "3", Kind: "categorization", Status: "incorrect"},
	} {
		if err := repo.AppendGradeEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.KindStats(ctx)
	if err != nil {
		t.Fatalf("kind stats: %v", err)
	}
	want := []KindStats{
		{Kind: "categorization", Checked: 1},
		{Kind: "mcq_single", Checked: 3, Correct: 2, Incomplete: 1},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	fixClock(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []SessionEventData{
		{SessionID: "a", Action: SessionStart, Bank: "a.json"},
		{SessionID: "a", Action: SessionEnd, Bank: "a.json", QuestionsChecked: 4, CorrectCount: 3, DurationSecs: 60},
		{SessionID: "b", Action: SessionStart, Bank: "b.json"},
	} {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("got %d summaries, want 1 (unfinished sessions excluded)", len(sums))
	}
	if sums[0].SessionID != "a" || sums[0].CorrectCount != 3 || sums[0].QuestionsChecked != 4 {
		t.Errorf("summary = %+v", sums[0])
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"q":1}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", InputTokens: 300, OutputTokens: 70, LatencyMs: 400, Success: false, ErrorMessage: "boom"},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].ErrorMessage != "boom" {
		t.Fatalf("events = %+v", events)
	}

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != `{"q":1}` || !e.Success {
		t.Errorf("get = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for a missing event")
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := LLMUsage{Key: "question-gen", Calls: 2, InputTokens: 400, OutputTokens: 120, AvgLatencyMs: 300}
	if len(usage) != 1 || usage[0] != want {
		t.Errorf("usage = %+v, want %+v", usage, want)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendGradeEvent(ctx, GradeEventData{SessionID: "a", BlockKey: "0", Kind: "mcq_single", Status: "correct", Correct: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "p", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	grades, _ := repo.QueryGradeEvents(ctx, "", QueryOpts{})
	llms, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(grades) != 0 || len(llms) != 0 {
		t.Errorf("after reset: %d grades, %d llm events", len(grades), len(llms))
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("QUIZKIT_DB", filepath.Join(dir, "custom", "q.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != filepath.Join(dir, "custom", "q.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("QUIZKIT_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if p != filepath.Join(dir, "quizkit", "quizkit.db") {
		t.Errorf("path = %q", p)
	}
}
