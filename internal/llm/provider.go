// Package llm asks an AI provider questions about a document.
package llm

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/sstrack/internal/model"
)

// Provider defines the interface for AI providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Ask sends a document and a prompt, returning the raw answer text
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ErrUnsupportedDocument is returned when a provider cannot read a document's media type
var ErrUnsupportedDocument = errors.New("document type not supported by provider")

// Document is a file handed to the provider
type Document struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsPDF reports whether the document is a PDF
func (d Document) IsPDF() bool { return d.MediaType == "application/pdf" }

// IsImage reports whether the document is an image
func (d Document) IsImage() bool { return strings.HasPrefix(d.MediaType, "image/") }

// IsText reports whether the document is plain text
func (d Document) IsText() bool { return strings.HasPrefix(d.MediaType, "text/") }

// ReadDocument loads a file, guessing its media type from the extension
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return NewDocument(filepath.Base(path), data), nil
}

// NewDocument wraps in-memory bytes, guessing the media type from name
func NewDocument(name string, data []byte) Document {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return Document{Name: name, MediaType: mediaType, Data: data}
}

// AskRequest contains one document question
type AskRequest struct {
	Document Document

	// Prompt is the question about the document
	Prompt string

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AskResponse contains the provider's answer
type AskResponse struct {
	// Text is the raw answer, not yet parsed
	Text string `json:"text"`

	// Model is the model that generated the response
	Model string `json:"model"`

	// TokensUsed tracks token consumption
	TokensUsed int `json:"tokens_used"`

	// Cached is set when the answer came from the cache
	Cached bool `json:"-"`
}

// Config holds AI provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Timeout:   60,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.AIConfig to llm.Config
func ConfigFromModel(c model.AIConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
	}
}

// systemPrompt is shared by every provider
const systemPrompt = "Você extrai dados de documentos de saúde e segurança do trabalho. Responda apenas com o que consta no documento, no formato pedido."

// pick returns the first non-empty value
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// pickInt returns the first positive value
func pickInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// promptWithText appends a text document's content to the prompt
func promptWithText(prompt string, doc Document) string {
	return prompt + "\n\nDocumento:\n" + string(doc.Data)
}
