// Package compose turns a topic into a markdown post body via the
// Anthropic API. Generation failures are not fatal to the pipeline: the
// caller falls back to a template body so a file is always produced.
package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/calebmartin/inkwell/internal/rotation"
)

// Generator is what the pipeline needs from a content source. Tests
// substitute a local implementation.
type Generator interface {
	GeneratePost(ctx context.Context, topic rotation.Topic) (string, error)
}

// Client generates post bodies using Anthropic's Claude.
type Client struct {
	anthropic *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

// NewClient creates a generation client with the provided API key and
// request settings.
func NewClient(apiKey, model string, maxTokens int64, timeout time.Duration) *Client {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		anthropic: &client,
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// GeneratePost asks the model for a complete post body about the topic.
// The returned markdown has any wrapping code fence stripped; it carries
// no frontmatter, which is the post package's job.
func (c *Client) GeneratePost(ctx context.Context, topic rotation.Topic) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := buildPostPrompt(topic)

	message, err := c.anthropic.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("unexpected empty response from Anthropic")
	}
	return StripFence(message.Content[0].Text), nil
}
