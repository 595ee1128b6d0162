package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testOpenAIEngine(serverURL string) *OpenAIEngine {
	e := NewOpenAIEngine(func() string { return "sk-test" }, nil)
	e.baseURL = serverURL
	return e
}

func TestOpenAISummarizeRequestShape(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("bad auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  A fine summary.  "}}]}`))
	}))
	defer server.Close()

	summary, err := testOpenAIEngine(server.URL).Summarize(context.Background(), Request{Transcript: "text here"})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "A fine summary." {
		t.Errorf("summary = %q, want trimmed content", summary)
	}

	if captured["model"] != "gpt-4o" {
		t.Errorf("model = %v, want gpt-4o", captured["model"])
	}
	if captured["temperature"] != 0.5 {
		t.Errorf("temperature = %v, want 0.5", captured["temperature"])
	}
	if captured["max_tokens"] != float64(1000) {
		t.Errorf("max_tokens = %v, want 1000", captured["max_tokens"])
	}

	messages, ok := captured["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", captured["messages"])
	}
	system := messages[0].(map[string]interface{})
	if system["role"] != "system" || !strings.Contains(system["content"].(string), "summarizes podcast transcripts") {
		t.Errorf("unexpected system message: %v", system)
	}
	user := messages[1].(map[string]interface{})
	if !strings.HasSuffix(user["content"].(string), "text here") {
		t.Errorf("user message should carry the transcript: %v", user["content"])
	}
}

func TestOpenAISummarizeMissingKey(t *testing.T) {
	e := NewOpenAIEngine(func() string { return "" }, nil)
	_, err := e.Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || err.Error() != "OpenAI API key not configured" {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestOpenAISummarizeUpstreamErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer server.Close()

	_, err := testOpenAIEngine(server.URL).Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || err.Error() != "OpenAI API error: Rate limit reached" {
		t.Fatalf("expected unwrapped upstream message, got %v", err)
	}
}

func TestOpenAISummarizeUpstreamErrorRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	_, err := testOpenAIEngine(server.URL).Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || err.Error() != "OpenAI API error: bad gateway" {
		t.Fatalf("expected raw body fallback, got %v", err)
	}
}

func TestOpenAISummarizeUpstreamErrorEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testOpenAIEngine(server.URL).Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || err.Error() != "OpenAI API error: HTTP error 500" {
		t.Fatalf("expected HTTP status fallback, got %v", err)
	}
}

func TestOpenAISummarizeNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := testOpenAIEngine(server.URL).Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no-choices error, got %v", err)
	}
}

func TestServiceSummarizeCustomPromptFromSetting(t *testing.T) {
	var userContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		userContent = body.Messages[1].Content
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	svc := NewService(
		func() string { return "openai" },
		func() string { return "Focus on guest names:" },
	)
	svc.Register(testOpenAIEngine(server.URL))

	if _, err := svc.Summarize(context.Background(), Request{Transcript: "T", Style: "custom"}); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !strings.HasPrefix(userContent, "Focus on guest names:") {
		t.Errorf("configured custom prompt not applied: %q", userContent)
	}
}

func TestServiceUnknownEngine(t *testing.T) {
	svc := NewService(func() string { return "missing" }, nil)
	_, err := svc.Summarize(context.Background(), Request{Transcript: "x"})
	if err == nil || !strings.Contains(err.Error(), "unknown summary engine") {
		t.Fatalf("expected unknown engine error, got %v", err)
	}
}
