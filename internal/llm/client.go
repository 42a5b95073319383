// Package llm provides the copy-generation collaborator over any
// OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// houseStyle is the system prompt for all front-page copy.
const houseStyle = "You write for The Prob, a prediction markets newsletter. " +
	"Voice: sharp, confident, dry wit, slightly irreverent. " +
	"Intelligent but not academic. Opinionated but not arrogant. " +
	"Never use em dashes. Use a comma or start a new sentence instead. " +
	"Short sentences. Active voice. Numbers as numerals ($2M, 47%). " +
	"No hedging. No fluff. No filler."

// Client wraps the OpenAI SDK for copy generation.
type Client struct {
	client *openai.Client
	model  string
}

// Config holds the configuration for the LLM client.
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
}

// NewClient creates a new LLM client. Endpoint may be empty for the OpenAI
// default, or point at any compatible gateway.
func NewClient(cfg Config) *Client {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		config.BaseURL = cfg.Endpoint
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}
}

// Complete sends one prompt under the house-style system prompt and returns
// the trimmed completion.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: houseStyle},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	// House style bans em dashes; models love them.
	text = strings.ReplaceAll(text, "—", ",")
	text = strings.ReplaceAll(text, " -- ", ", ")
	return text, nil
}
