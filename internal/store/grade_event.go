package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var gradeColumns = []string{
	"id", "sequence", "timestamp", "session_id", "bank", "block_key",
	"kind", "prompt", "status", "correct", "message", "answer",
}

func (r *eventRepo) AppendGradeEvent(ctx context.Context, data GradeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("grade_events").
		Columns(gradeColumns[1:]...).
		Values(seqNum, toMillis(now()), data.SessionID, data.Bank, data.BlockKey,
			data.Kind, data.Prompt, data.Status, data.Correct, data.Message, data.Answer).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save grade event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGradeEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]GradeEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(gradeColumns...).From(b.Table("grade_events"))
	if sessionID != "" {
		sel.Where(entsql.EQ("session_id", sessionID))
	}
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query grade events: %w", err)
	}
	defer rows.Close()

	var out []GradeEvent
	for rows.Next() {
		var (
			e  GradeEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Bank, &e.BlockKey,
			&e.Kind, &e.Prompt, &e.Status, &e.Correct, &e.Message, &e.Answer); err != nil {
			return nil, fmt.Errorf("scan grade event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query grade events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) KindStats(ctx context.Context) ([]KindStats, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(
		"kind",
		entsql.Count("*"),
		"SUM(CASE WHEN correct THEN 1 ELSE 0 END)",
		"SUM(CASE WHEN status = 'incomplete' THEN 1 ELSE 0 END)",
	).
		From(b.Table("grade_events")).
		GroupBy("kind").
		OrderBy("kind").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query kind stats: %w", err)
	}
	defer rows.Close()

	var out []KindStats
	for rows.Next() {
		var s KindStats
		if err := rows.Scan(&s.Kind, &s.Checked, &s.Correct, &s.Incomplete); err != nil {
			return nil, fmt.Errorf("scan kind stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query kind stats: %w", err)
	}
	return out, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	for _, table := range eventTables() {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return r.seq.reset(ctx)
}
