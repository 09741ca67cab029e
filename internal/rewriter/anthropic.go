package rewriter

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicRewriter rewrites text via the Anthropic Messages API.
type AnthropicRewriter struct {
	client anthropic.Client
	model  string
}

var _ Rewriter = (*AnthropicRewriter)(nil)

// NewAnthropicRewriter creates a rewriter for the given API key and model.
// An empty model falls back to the default.
func NewAnthropicRewriter(apiKey, model string) *AnthropicRewriter {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicRewriter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (r *AnthropicRewriter) Rewrite(ctx context.Context, text string, instruction Instruction) (string, error) {
	message, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(text, instruction))),
		},
	})
	if err != nil {
		return "", &RewriteError{Reason: "Anthropic API error", Wrapped: err}
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			out := SanitizeResponse(block.Text)
			if out == "" {
				return "", &RewriteError{Reason: "empty response from Anthropic"}
			}
			return out, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}
