package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/llm"
)

// Config holds the OpenAI-compatible provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.Request) (*llm.Response, error) {
	output, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: request.Prompt,
			},
		},
		MaxTokens:   request.MaxTokens,
		Temperature: float32(request.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke openai model: %w", describe(err))
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response: %w", llm.ErrEmptyResponse)
	}

	choice := output.Choices[0]
	if choice.Message.Content == "" {
		return nil, fmt.Errorf("choice has no content: %w", llm.ErrEmptyResponse)
	}

	return &llm.Response{
		Content:    choice.Message.Content,
		StopReason: string(choice.FinishReason),
	}, nil
}

// describe adds the HTTP status to API errors while keeping the original error chain.
func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("api error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("request error %d: %w", reqErr.HTTPStatusCode, err)
	}

	return err
}
