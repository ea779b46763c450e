// Package llm is the chat-completion boundary of the processing pipeline.
package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT3Dot5Turbo

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("llm: empty response")

// Role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role
	Content string
}

// Completer returns the model's reply to a conversation. maxTokens <= 0
// leaves the reply length to the provider.
type Completer interface {
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}

// Config selects the OpenAI-compatible endpoint.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// OpenAI implements Completer with github.com/sashabaranov/go-openai.
type OpenAI struct {
	client *openai.Client
	model  string
}

var _ Completer = (*OpenAI)(nil)

// NewOpenAI returns a client for cfg. An empty BaseURL uses api.openai.com.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: missing API key")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientCfg), model: model}, nil
}

// Complete sends the conversation as a single chat completion request.
func (o *OpenAI) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "failed to create chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
