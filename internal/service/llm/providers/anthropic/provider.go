package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domainllm "legalpad/internal/domain/services/llm"
)

// Provider implements the Provider interface for Anthropic (Claude) models.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates a new Anthropic provider with the given API key.
func NewProvider(apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// SupportsModel returns true if this provider supports the given model.
// Anthropic models start with "claude-"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// GenerateText generates a complete response from Claude. Text blocks in the
// reply are concatenated; non-text blocks are ignored.
func (p *Provider) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (string, error) {
	if !p.SupportsModel(req.Model) {
		return "", fmt.Errorf("model '%s' is not supported by Anthropic provider", req.Model)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.EffectiveMaxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: req.System,
			},
		}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var sb strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic response contained no text content")
	}

	return sb.String(), nil
}
