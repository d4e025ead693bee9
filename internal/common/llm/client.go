// Package llm wraps the OpenAI-compatible chat completion client used by
// both pipeline stages.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"sysmon-agent/internal/common/config"
)

// ChatClient abstracts the chat completion call so stages can be unit
// tested with an injected mock.
type ChatClient interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Client wraps openai.Client with the configured model.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a chat client from the llm config section. The base
// URL is optional; when empty the client uses the OpenAI default.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &Client{client: &client, model: cfg.Model}, nil
}

// Complete sends a chat completion request using the configured model.
func (c *Client) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	params.Model = shared.ChatModel(c.model)
	return c.client.Chat.Completions.New(ctx, params)
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// FirstContent extracts the text of the first choice, or an empty string
// when the response carries none.
func FirstContent(resp *openai.ChatCompletion) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
