package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message handed to the model.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is the language-model collaborator. Complete sends the full
// assembled context and returns the model's reply text. Failures are
// opaque service errors; no retry policy lives at this layer.
type Client interface {
	Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error)
}

// GroqBaseURL is Groq's OpenAI-compatible API endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient calls Groq's chat completion API through the OpenAI-compatible
// surface. The base URL is configurable so tests and other compatible
// providers can point it elsewhere.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient constructs a Groq-backed client for the given model. An
// empty baseURL falls back to GroqBaseURL.
func NewGroqClient(apiKey, model, baseURL string) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	cfg.BaseURL = baseURL
	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the message history and returns the assistant's reply.
func (c *GroqClient) Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
