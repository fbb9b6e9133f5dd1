package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func draftRequest() Request {
	return Request{
		System:    "You write quiz questions.",
		Messages:  UserMessage("Two questions about rivers."),
		Schema:    draftSchema(),
		MaxTokens: 512,
	}
}

const draftJSON = `{"drafts":[{"kind":"mcq_single","text":"Longest river?","options":["Nile","Seine"],"answers":[0]}]}`

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 40},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	url := serve(t, http.StatusOK, anthropicMessage("```json\n"+draftJSON+"\n```", "end_turn"))
	p, err := NewAnthropicProvider(BackendConfig{APIKey: "k", Model: "claude-haiku", BaseURL: url})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	resp, err := p.Generate(context.Background(), draftRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != draftJSON {
		t.Fatalf("content = %s, want fence stripped", resp.Content)
	}
	if resp.Usage.TotalTokens != 160 {
		t.Fatalf("total tokens = %d, want 160", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop = %q", resp.StopReason)
	}
}

func TestAnthropicProvider_TruncatedOutput(t *testing.T) {
	url := serve(t, http.StatusOK, anthropicMessage(`{"drafts":[{"kind":"mcq_`, "max_tokens"))
	p, _ := NewAnthropicProvider(BackendConfig{APIKey: "k", BaseURL: url})

	_, err := p.Generate(context.Background(), draftRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_RateLimited(t *testing.T) {
	url := serve(t, http.StatusTooManyRequests, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
	})
	p, _ := NewAnthropicProvider(BackendConfig{APIKey: "k", BaseURL: url})

	_, err := p.Generate(context.Background(), draftRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func openaiCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 90, "completion_tokens": 30, "total_tokens": 120},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &sent)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletion(draftJSON, "stop"))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(BackendConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	resp, err := p.Generate(context.Background(), draftRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Model != "gpt-4o-mini-2024-07-18" {
		t.Fatalf("model = %q", resp.Model)
	}
	if resp.Usage.InputTokens != 90 || resp.Usage.OutputTokens != 30 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	msgs, _ := sent["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	format, _ := sent["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("response_format = %v", sent["response_format"])
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	url := serve(t, http.StatusOK, openaiCompletion(`{"drafts":"none"}`, "stop"))
	p, _ := NewOpenAIProvider(BackendConfig{APIKey: "k", BaseURL: url + "/v1"})

	_, err := p.Generate(context.Background(), draftRequest())
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
	if !strings.Contains(string(inv.Content), "none") {
		t.Fatalf("invalid content not kept: %s", inv.Content)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	url := serve(t, http.StatusBadGateway, map[string]any{
		"error": map[string]any{"type": "server_error", "message": "upstream"},
	})
	p, _ := NewOpenAIProvider(BackendConfig{APIKey: "k", BaseURL: url + "/v1"})

	_, err := p.Generate(context.Background(), draftRequest())
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestGeminiProvider_Generate(t *testing.T) {
	url := serve(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": draftJSON}}},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 70, "candidatesTokenCount": 20, "totalTokenCount": 90},
	})
	p, err := NewGeminiProvider(context.Background(), BackendConfig{APIKey: "k", Model: "gemini-flash", BaseURL: url})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	if p.ModelID() != "gemini-2.5-flash" {
		t.Fatalf("model = %q", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), draftRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != draftJSON {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 90 {
		t.Fatalf("total tokens = %d", resp.Usage.TotalTokens)
	}
}

func TestBackends_RequireAPIKey(t *testing.T) {
	if _, err := NewAnthropicProvider(BackendConfig{}); err == nil {
		t.Error("anthropic: expected error without key")
	}
	if _, err := NewOpenAIProvider(BackendConfig{}); err == nil {
		t.Error("openai: expected error without key")
	}
	if _, err := NewGeminiProvider(context.Background(), BackendConfig{}); err == nil {
		t.Error("gemini: expected error without key")
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		in     string
		want   string
	}{
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-5-20250929"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{openaiModels, "gpt-4o-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-pro", "gemini-2.5-pro"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(draftSchema().Definition)

	if s.Type != "OBJECT" {
		t.Fatalf("type = %s", s.Type)
	}
	drafts := s.Properties["drafts"]
	if drafts == nil || drafts.Type != "ARRAY" {
		t.Fatalf("drafts = %+v", drafts)
	}
	if drafts.MinItems == nil || *drafts.MinItems != 1 {
		t.Fatalf("minItems not carried: %+v", drafts.MinItems)
	}
	item := drafts.Items
	if len(item.Properties["kind"].Enum) != 3 {
		t.Fatalf("kind enum = %v", item.Properties["kind"].Enum)
	}
	cat := item.Properties["category"]
	if cat.Type != "STRING" || cat.Nullable == nil || !*cat.Nullable {
		t.Fatalf("nullable string not mapped: %+v", cat)
	}
	if len(item.Required) != 2 {
		t.Fatalf("required = %v", item.Required)
	}
}
