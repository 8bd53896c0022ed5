package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicProvider_Ask_PDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("Expected anthropic-version header 2023-06-01, got %s", r.Header.Get("anthropic-version"))
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		blocks := req.Messages[0].Content
		if len(blocks) != 2 || blocks[0].Type != "document" || blocks[1].Type != "text" {
			t.Fatalf("expected document then question blocks, got %+v", blocks)
		}
		if blocks[0].Source.MediaType != "application/pdf" || blocks[0].Source.Type != "base64" {
			t.Errorf("unexpected source %+v", blocks[0].Source)
		}
		if req.System == "" {
			t.Error("expected a system prompt")
		}

		_, _ = w.Write([]byte(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20241022",
			"content": [{"type": "text", "text": "{\"data\": \"10/01/2024\"}"}],
			"usage": {"input_tokens": 50, "output_tokens": 50}
		}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Ask(context.Background(), AskRequest{
		Document: NewDocument("certificado.pdf", []byte("%PDF-1.4")),
		Prompt:   "Extraia",
	})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if resp.Text != `{"data": "10/01/2024"}` {
		t.Errorf("Unexpected answer: %s", resp.Text)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("Expected 100 tokens, got %d", resp.TokensUsed)
	}
}

func TestAnthropicProvider_Ask_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "Invalid request"}}`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	_, err := provider.Ask(context.Background(), AskRequest{Prompt: "oi"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid_request_error") {
		t.Errorf("Expected error to contain invalid_request_error, got %v", err)
	}
}

func TestAnthropicProvider_Ask_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "msg_1", "content": []}`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if _, err := provider.Ask(context.Background(), AskRequest{Prompt: "oi"}); err == nil {
		t.Fatal("Expected error for empty content")
	}
}

func TestAnthropicBlocks(t *testing.T) {
	tests := []struct {
		name  string
		doc   Document
		types []string
	}{
		{"no document", Document{}, []string{"text"}},
		{"text", NewDocument("a.txt", []byte("x")), []string{"text"}},
		{"image", NewDocument("a.jpg", []byte("x")), []string{"image", "text"}},
		{"pdf", NewDocument("a.pdf", []byte("x")), []string{"document", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := anthropicBlocks(AskRequest{Document: tt.doc, Prompt: "q"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(blocks) != len(tt.types) {
				t.Fatalf("expected %d blocks, got %d", len(tt.types), len(blocks))
			}
			for i, typ := range tt.types {
				if blocks[i].Type != typ {
					t.Errorf("block %d: expected %s, got %s", i, typ, blocks[i].Type)
				}
			}
		})
	}

	if _, err := anthropicBlocks(AskRequest{Document: Document{MediaType: "application/zip", Data: []byte("x")}}); err == nil {
		t.Error("expected unsupported document error")
	}
}
