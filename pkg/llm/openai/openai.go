// Package openai provides an OpenAI-compatible LLM provider implementation.
//
// A custom base URL makes the provider work against Azure OpenAI, local
// models, and other compatible services:
//
//	provider, _ := openai.NewProvider("sk-...", openai.WithModel("gpt-4o"))
//
//	provider, _ := openai.NewProvider("local",
//	    openai.WithBaseURL("http://localhost:8080/v1"))
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/entrhq/scout/pkg/types"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// Provider implements the LLM provider interface for OpenAI-compatible APIs.
type Provider struct {
	client openai.Client
	model  string
}

// providerConfig collects construction state before the client exists.
type providerConfig struct {
	model   string
	baseURL string
}

// Option configures provider construction.
type Option func(*providerConfig)

// WithModel sets the model to use for completions.
func WithModel(model string) Option {
	return func(c *providerConfig) { c.model = model }
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(c *providerConfig) { c.baseURL = baseURL }
}

// NewProvider creates a new OpenAI provider with the given API key. If apiKey
// is empty, the OPENAI_API_KEY environment variable is used.
func NewProvider(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	cfg := providerConfig{model: DefaultModel}
	for _, opt := range opts {
		opt(&cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &Provider{
		client: openai.NewClient(reqOpts...),
		model:  cfg.model,
	}, nil
}

// Complete sends messages to the API and returns the assistant response.
func (p *Provider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case types.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, userMessage(msg))
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model %s", p.model)
	}

	return &types.Message{
		Role:    types.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

// userMessage converts a user message, attaching images as data URLs when
// present.
func userMessage(msg *types.Message) openai.ChatCompletionMessageParamUnion {
	if len(msg.Images) == 0 {
		return openai.UserMessage(msg.Content)
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(msg.Content),
	}
	for _, img := range msg.Images {
		url := fmt.Sprintf("data:%s;base64,%s",
			img.MediaType, base64.StdEncoding.EncodeToString(img.Data))
		parts = append(parts, openai.ImageContentPart(
			openai.ChatCompletionContentPartImageImageURLParam{URL: url}))
	}
	return openai.UserMessage(parts)
}

// GetModel returns the model name being used.
func (p *Provider) GetModel() string { return p.model }
