package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "action", "bank",
			"questions_checked", "correct_count", "duration_secs").
		Values(seqNum, toMillis(now()), data.SessionID, data.Action, data.Bank,
			data.QuestionsChecked, data.CorrectCount, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("session_id", "bank", "timestamp", "questions_checked", "correct_count", "duration_secs").
		From(b.Table("session_events")).
		Where(entsql.EQ("action", SessionEnd))
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s  SessionSummary
			ts int64
		)
		if err := rows.Scan(&s.SessionID, &s.Bank, &ts, &s.QuestionsChecked, &s.CorrectCount, &s.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		s.EndedAt = fromMillis(ts)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return out, nil
}
