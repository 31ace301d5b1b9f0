package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	domainllm "legalpad/internal/domain/services/llm"
)

// Provider is a mock provider that generates lorem ipsum text.
// Used for development and tests without requiring real API keys.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// GenerateText generates lorem ipsum paragraphs after a short simulated
// processing delay. "lorem-slow" models take longer, mimicking a slow
// upstream API.
func (p *Provider) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (string, error) {
	if !p.SupportsModel(req.Model) {
		return "", fmt.Errorf("model '%s' is not supported by lorem provider", req.Model)
	}

	select {
	case <-time.After(p.delay(req.Model)):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	// Estimate: 1 token ≈ 4 characters
	targetChars := req.EffectiveMaxTokens() * 4
	if targetChars > 2000 {
		targetChars = 2000
	}

	var sb strings.Builder
	for sb.Len() < targetChars {
		sb.WriteString("<p>")
		sb.WriteString(p.generator.Paragraph(2, 4))
		sb.WriteString("</p>\n")
	}

	return sb.String(), nil
}

// delay returns the simulated processing delay for a model.
func (p *Provider) delay(model string) time.Duration {
	if strings.Contains(model, "slow") {
		return 2 * time.Second
	}
	return 50 * time.Millisecond
}
