package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// GradeEventData captures one checked question or block.
type GradeEventData struct {
	SessionID string
	Bank      string
	BlockKey  string // composite key, e.g. "3" or "3-1"
	Kind      string
	Prompt    string
	Status    string
	Correct   bool
	Message   string
	Answer    string // normalized learner answer as JSON
}

// GradeEvent is a stored grade event.
type GradeEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GradeEventData
}

// Session actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures the start or end of a practice session.
type SessionEventData struct {
	SessionID        string
	Action           string // SessionStart or SessionEnd
	Bank             string
	QuestionsChecked int
	CorrectCount     int
	DurationSecs     int
}

// SessionSummary describes a finished practice session.
type SessionSummary struct {
	SessionID        string
	Bank             string
	EndedAt          time.Time
	QuestionsChecked int
	CorrectCount     int
	DurationSecs     int
}

// KindStats aggregates grade events for one question kind.
type KindStats struct {
	Kind       string
	Checked    int
	Correct    int
	Incomplete int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests for one purpose or model.
type LLMUsage struct {
	Key          string // purpose or model
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendGradeEvent records a graded check.
	AppendGradeEvent(ctx context.Context, data GradeEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryGradeEvents returns grade events, optionally for one session.
	QueryGradeEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]GradeEvent, error)

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)

	// KindStats aggregates all grade events by question kind.
	KindStats(ctx context.Context) ([]KindStats, error)

	// QueryLLMEvents returns LLM request events.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM request event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// Reset deletes every event and restarts the sequence.
	Reset(ctx context.Context) error
}
