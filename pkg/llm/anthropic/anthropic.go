// Package anthropic provides an Anthropic Claude LLM provider implementation.
package anthropic

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/entrhq/scout/pkg/types"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_20250514)

// maxTokens bounds completion length; grounding answers are short JSON.
const maxTokens = 1024

// Provider implements the LLM provider interface using Anthropic's Claude.
type Provider struct {
	client *anthropic.Client
	model  string
}

// Option configures provider construction.
type Option func(*Provider)

// WithModel sets the model to use for completions.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// NewProvider creates a new Claude provider. If apiKey is empty, the
// ANTHROPIC_API_KEY environment variable is used.
func NewProvider(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (provide via parameter or ANTHROPIC_API_KEY environment variable)")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	p := &Provider{client: &client, model: DefaultModel}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Complete sends messages to the API and returns the assistant response.
// System messages are lifted into the request's system prompt.
func (p *Provider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
	}

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case types.RoleAssistant:
			params.Messages = append(params.Messages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(contentBlocks(msg)...))
		}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("Claude API error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from model %s", p.model)
	}

	return &types.Message{Role: types.RoleAssistant, Content: text}, nil
}

// contentBlocks converts a user message into Claude content blocks, images
// first so the model sees the screenshot before the instructions.
func contentBlocks(msg *types.Message) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	for _, img := range msg.Images {
		blocks = append(blocks, anthropic.NewImageBlockBase64(
			img.MediaType, base64.StdEncoding.EncodeToString(img.Data)))
	}
	return append(blocks, anthropic.NewTextBlock(msg.Content))
}

// GetModel returns the model name being used.
func (p *Provider) GetModel() string { return p.model }
