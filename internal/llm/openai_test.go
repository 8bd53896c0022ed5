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

	"github.com/sashabaranov/go-openai"
)

func openAIServer(t *testing.T, answer string, inspect func(body string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		if inspect != nil {
			inspect(string(body))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message:      openai.ChatCompletionMessage{Role: "assistant", Content: answer},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 100},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIProvider_Ask_Text(t *testing.T) {
	server := openAIServer(t, " 1. PGR\n2. 15/03/2024 ", func(body string) {
		if !strings.Contains(body, "Documento:") || !strings.Contains(body, "conteudo do pgr") {
			t.Errorf("text documents should be inlined in the prompt: %s", body)
		}
	})
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Ask(context.Background(), AskRequest{
		Document: NewDocument("pgr.txt", []byte("conteudo do pgr")),
		Prompt:   "Qual o tipo?",
	})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if resp.Text != "1. PGR\n2. 15/03/2024" {
		t.Errorf("Unexpected answer: %q", resp.Text)
	}
	if resp.TokensUsed != 100 || resp.Model != "gpt-4o-mini" {
		t.Errorf("Unexpected metadata: %+v", resp)
	}
}

func TestOpenAIProvider_Ask_Image(t *testing.T) {
	server := openAIServer(t, "{}", func(body string) {
		if !strings.Contains(body, "image_url") || !strings.Contains(body, "data:image/png;base64,") {
			t.Errorf("images should be sent as data URLs: %s", body)
		}
	})
	defer server.Close()

	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if _, err := provider.Ask(context.Background(), AskRequest{
		Document: NewDocument("aso.png", []byte{0x89, 'P', 'N', 'G'}),
		Prompt:   "Extraia",
	}); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
}

func TestOpenAIProvider_Ask_PDFUnsupported(t *testing.T) {
	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:0", Timeout: 1})
	_, err := provider.Ask(context.Background(), AskRequest{
		Document: NewDocument("aso.pdf", []byte("%PDF-1.4")),
		Prompt:   "Extraia",
	})
	if !errors.Is(err, ErrUnsupportedDocument) {
		t.Errorf("expected ErrUnsupportedDocument, got %v", err)
	}
}

func TestOpenAIProvider_Ask_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Ask(context.Background(), AskRequest{Prompt: "oi"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}
