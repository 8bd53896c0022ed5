package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/util"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = util.NewHTTPClient(timeoutOf(config, 60*time.Second), util.Proxy{
		HTTP:  config.HTTPProxy,
		HTTPS: config.HTTPSProxy,
	})

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Ask answers a question about a text or image document. PDFs must be
// converted by the caller; the chat API does not read them.
func (p *OpenAIProvider) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	user, err := openAIUserMessage(req)
	if err != nil {
		return nil, err
	}

	model := pick(req.Model, p.config.Model, openai.GPT4oMini)

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			user,
		},
		MaxTokens:   pickInt(req.MaxTokens, p.config.MaxTokens, 1000),
		Temperature: 0,
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &AskResponse{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      pick(resp.Model, model),
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func openAIUserMessage(req AskRequest) (openai.ChatCompletionMessage, error) {
	doc := req.Document
	switch {
	case doc.IsText() || len(doc.Data) == 0:
		content := req.Prompt
		if len(doc.Data) > 0 {
			content = promptWithText(req.Prompt, doc)
		}
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: content}, nil

	case doc.IsImage():
		dataURL := "data:" + doc.MediaType + ";base64," + base64.StdEncoding.EncodeToString(doc.Data)
		return openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailHigh,
				}},
			},
		}, nil
	}
	return openai.ChatCompletionMessage{}, fmt.Errorf("openai: %s: %w", doc.MediaType, ErrUnsupportedDocument)
}

func timeoutOf(config Config, fallback time.Duration) time.Duration {
	if config.Timeout > 0 {
		return time.Duration(config.Timeout) * time.Second
	}
	return fallback
}
