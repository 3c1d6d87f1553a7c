package analyze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(reply) //nolint:errcheck // static test fixture
	return string(data)
}

func TestClientAnalyze(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 {
			t.Errorf("messages = %d, want 1", len(req.Messages))
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(chatReply("EMAILS: jane@company.com"))); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	resp, err := client.Analyze(context.Background(), Request{
		Content:     "some page text",
		Level:       0,
		Instruction: Instruction(0, 4),
		MaxLinks:    4,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(resp.Emails) != 1 || resp.Emails[0] != "jane@company.com" {
		t.Errorf("Emails = %v", resp.Emails)
	}
}

func TestClientAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.Analyze(context.Background(), Request{Content: "x"}); err == nil {
		t.Error("Analyze() error = nil, want failure to trigger strategy fallback")
	}
}

func TestClientAnalyzeUnstructuredReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(chatReply("no contact details, sorry"))); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.Analyze(context.Background(), Request{Content: "x"}); err == nil {
		t.Error("Analyze() error = nil, want ErrMalformed for unstructured reply")
	}
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient("", "key"); err == nil {
		t.Error("NewClient(\"\") error = nil, want endpoint required")
	}
}
