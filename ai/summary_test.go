package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checkitsa/risk"
)

func TestSummarizeFallbackWithoutClient(t *testing.T) {
	signals := []risk.Signal{
		{Name: "free_host", Weight: 65, Triggered: true},
		{Name: "https_ok", Weight: 10, Triggered: false},
	}
	msg := Summarize(context.Background(), nil, "website", "shady.wixsite.com", 80, risk.VerdictDangerous, signals)
	if !strings.Contains(msg, "80/100") {
		t.Errorf("fallback message missing score: %q", msg)
	}
	if !strings.Contains(msg, "free host") {
		t.Errorf("fallback message missing triggered signal: %q", msg)
	}
	if strings.Contains(msg, "https") {
		t.Errorf("fallback message should skip untriggered signals: %q", msg)
	}
}

func TestSummarizeUsesGeminiReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" This site looks dangerous. Do not pay. "}],"role":"model"}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("key")
	c.BaseURL = srv.URL
	msg := Summarize(context.Background(), c, "website", "shady.example", 75, risk.VerdictDangerous, nil)
	if msg != "This site looks dangerous. Do not pay." {
		t.Errorf("msg = %q", msg)
	}
}

func TestSummarizeFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient("key")
	c.BaseURL = srv.URL
	msg := Summarize(context.Background(), c, "website", "example.com", 0, risk.VerdictSafe, nil)
	if !strings.Contains(msg, "No risk indicators") {
		t.Errorf("expected fallback message, got %q", msg)
	}
}
