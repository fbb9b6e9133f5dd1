package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wifeymooc/quizkit/internal/store"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`oops`), Err: errors.New("bad")}}
}

func TestRetryProvider(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		queue     []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", 3, []MockResponse{okResponse}, 1, false},
		{"outage then success", 3, []MockResponse{unavailable(), okResponse}, 2, false},
		{"rate limit honors retry-after", 3, []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okResponse}, 2, false},
		{"attempts exhausted", 3, []MockResponse{unavailable(), unavailable(), unavailable(), okResponse}, 3, true},
		{"invalid output retried once", 4, []MockResponse{invalid(), invalid(), okResponse}, 2, true},
		{"invalid then success", 3, []MockResponse{invalid(), okResponse}, 2, false},
		{"truncation is final", 3, []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse}, 1, true},
		{"zero attempts still calls once", 0, []MockResponse{unavailable(), okResponse}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.queue...)
			_, err := WithRetry(mock, fastRetry(tt.attempts)).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetryProvider_StopsOnCancel(t *testing.T) {
	mock := NewMockProvider(unavailable(), okResponse)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}
}

// stallProvider blocks until its context ends.
type stallProvider struct{}

func (stallProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stallProvider) ModelID() string { return "stall" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(stallProvider{}, 10*time.Millisecond)
	if p.ModelID() != "stall" {
		t.Fatalf("model = %q", p.ModelID())
	}

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout not applied")
	}

	if _, ok := WithTimeout(stallProvider{}, 0).(stallProvider); !ok {
		t.Fatal("zero timeout should return the provider unchanged")
	}
}

func TestLoggingProvider(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(draftJSON), Usage: Usage{InputTokens: 11, OutputTokens: 7}},
		MockResponse{Content: json.RawMessage(`{"drafts":"nope"}`)},
	)
	p := WithLogging(mock, ProviderMock, repo)
	ctx := WithPurpose(context.Background(), PurposeQuestionGen)

	if _, err := p.Generate(ctx, draftRequest()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, draftRequest()); err == nil {
		t.Fatal("second call should fail validation")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("logged %d events, want 2", len(events))
	}

	// Newest first.
	failed, ok := events[0], events[1]
	if failed.Success || !strings.Contains(failed.ResponseBody, "nope") || failed.ErrorMessage == "" {
		t.Fatalf("failed event = %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 11 || ok.OutputTokens != 7 || ok.Purpose != PurposeQuestionGen {
		t.Fatalf("ok event = %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nYou write quiz questions.") ||
		!strings.Contains(ok.RequestBody, "[schema: test-drafts]") {
		t.Fatalf("request body = %q", ok.RequestBody)
	}

	if WithLogging(mock, ProviderMock, nil) != Provider(mock) {
		t.Fatal("nil repo should return the provider unchanged")
	}
}
