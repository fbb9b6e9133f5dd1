package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func draftSchema() *Schema {
	return &Schema{
		Name:        "test-drafts",
		Description: "Question drafts",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"drafts": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"kind":     map[string]any{"type": "string", "enum": []any{"mcq_single", "mcq_multiple", "word_fill"}},
							"text":     map[string]any{"type": "string"},
							"options":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"answers":  map[string]any{"type": "array", "items": map[string]any{"type": "integer", "minimum": 0}},
							"category": map[string]any{"type": []any{"string", "null"}},
						},
						"required": []any{"kind", "text"},
					},
				},
			},
			"required": []any{"drafts"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete draft", draftJSON, true},
		{"optional fields omitted", `{"drafts":[{"kind":"word_fill","text":"Fill ___"}]}`, true},
		{"null category", `{"drafts":[{"kind":"word_fill","text":"x","category":null}]}`, true},
		{"empty draft list", `{"drafts":[]}`, false},
		{"missing text", `{"drafts":[{"kind":"mcq_single"}]}`, false},
		{"unknown kind", `{"drafts":[{"kind":"essay","text":"x"}]}`, false},
		{"negative answer", `{"drafts":[{"kind":"mcq_single","text":"x","answers":[-1]}]}`, false},
		{"malformed", `{"drafts":[`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(draftSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := string(stripFence([]byte(tt.in))); got != tt.want {
			t.Errorf("stripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFinish(t *testing.T) {
	usage := Usage{InputTokens: 3, OutputTokens: 4, TotalTokens: 7}

	t.Run("free text is untouched", func(t *testing.T) {
		resp, err := finish(Request{}, "```hello```", usage, "m", "end")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != "```hello```" || resp.Model != "m" || resp.Usage != usage {
			t.Fatalf("resp = %+v", resp)
		}
	})

	t.Run("schema output is unfenced", func(t *testing.T) {
		resp, err := finish(Request{Schema: draftSchema()}, "```json\n"+draftJSON+"\n```", usage, "m", "end")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != draftJSON {
			t.Fatalf("content = %s", resp.Content)
		}
	})

	t.Run("invalid at the token limit", func(t *testing.T) {
		_, err := finish(Request{Schema: draftSchema()}, `{"drafts":[{"kind"`, usage, "m", "max_tokens")
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
		}
	})

	t.Run("valid at the token limit", func(t *testing.T) {
		resp, err := finish(Request{Schema: draftSchema()}, draftJSON, usage, "m", "max_tokens")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StopReason != "max_tokens" {
			t.Fatalf("stop = %q", resp.StopReason)
		}
	})
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{&ErrRateLimit{Err: cause}, "rate limited (retry after 0s): boom"},
		{&ErrInvalidResponse{Err: cause}, "invalid LLM response: boom"},
		{&ErrProviderUnavailable{}, "LLM provider unavailable"},
		{&ErrProviderUnavailable{Err: cause}, "LLM provider unavailable: boom"},
		{&ErrMaxTokensExceeded{}, "LLM response truncated: max tokens exceeded"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(&ErrProviderUnavailable{Err: cause}, cause) {
		t.Error("ErrProviderUnavailable does not unwrap")
	}
	if _, ok := classifyStatus(429, cause).(*ErrRateLimit); !ok {
		t.Error("429 not classified as rate limit")
	}
	if _, ok := classifyStatus(503, cause).(*ErrProviderUnavailable); !ok {
		t.Error("503 not classified as unavailable")
	}
}
