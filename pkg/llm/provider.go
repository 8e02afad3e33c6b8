// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with LLM services and return plain
// response messages. The navigator layer owns prompt construction, response
// parsing, and retry policy, which keeps providers reusable outside plan
// execution (CLI tools, batch annotation, etc.).
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := provider.Complete(ctx, []*types.Message{
//	    types.NewVisionMessage(prompt, screenshotPNG),
//	})
package llm

import (
	"context"

	"github.com/entrhq/scout/pkg/types"
)

// Provider defines the interface for LLM integrations. Implementations must
// support vision: user messages may carry PNG image attachments.
type Provider interface {
	// Complete sends messages to the LLM and returns the full assistant
	// response.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModel returns the model name being used.
	GetModel() string
}
