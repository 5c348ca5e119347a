// Package llm talks to the OpenAI chat-completion API for the two jobs
// this app has: short consultation replies and structured strategy text.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// MessageType distinguishes the two speakers of the chat history.
const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// Message is one turn of the browser-side conversation history.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Generator is the model-facing seam; the server depends on this so
// tests can swap in a canned implementation.
type Generator interface {
	Chat(ctx context.Context, message string, history []Message) (string, error)
	GenerateStrategyText(ctx context.Context, history []Message) (string, error)
}

const (
	chatMaxTokens     = 300
	chatTemperature   = 0.5
	strategyMaxTokens = 1200
	// Higher temperature buys creative strategy ideas; the parser
	// tolerates the extra structural noise.
	strategyTemperature = 0.7
)

// Client implements Generator on the OpenAI API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates an OpenAI-backed generator.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Chat answers one consultation message with the history as context.
func (c *Client) Chat(ctx context.Context, message string, history []Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: chatSystemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Type == MessageTypeUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateStrategyText asks the model for the multi-strategy block the
// parser consumes. The raw text is returned untouched; parsing and
// fallback are the caller's concern.
func (c *Client) GenerateStrategyText(ctx context.Context, history []Message) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: strategySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strategyUserPrompt(history)},
		},
		MaxTokens:   strategyMaxTokens,
		Temperature: strategyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("strategy completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("strategy completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
