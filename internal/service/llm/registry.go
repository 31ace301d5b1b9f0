package llm

import (
	"context"
	"fmt"
	"log/slog"

	"legalpad/internal/config"
	domainllm "legalpad/internal/domain/services/llm"
	"legalpad/internal/service/llm/providers/anthropic"
	"legalpad/internal/service/llm/providers/lorem"
)

// Registry routes models to providers by prefix. Anthropic serves "claude-*",
// lorem serves "lorem-*"; lorem is always registered so dev and tests work
// without API keys.
type Registry struct {
	providers []domainllm.Provider
}

// NewRegistry creates a registry over the given providers. Lookup order
// follows registration order.
func NewRegistry(providers ...domainllm.Provider) *Registry {
	return &Registry{providers: providers}
}

// ProviderFor returns the first provider that supports the model.
func (r *Registry) ProviderFor(model string) (domainllm.Provider, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	for _, p := range r.providers {
		if p.SupportsModel(model) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no provider supports model %q", model)
}

// GenerateText routes the request to the provider serving its model.
func (r *Registry) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (string, error) {
	provider, err := r.ProviderFor(req.Model)
	if err != nil {
		return "", err
	}
	return provider.GenerateText(ctx, req)
}

// SetupProviders builds the provider registry from configuration.
func SetupProviders(cfg *config.Config, logger *slog.Logger) (*Registry, error) {
	providers := []domainllm.Provider{}

	if cfg.AnthropicAPIKey != "" {
		anthropicProvider, err := anthropic.NewProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("create anthropic provider: %w", err)
		}
		providers = append(providers, anthropicProvider)
		logger.Info("provider available", "name", "anthropic", "models", "claude-*")
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set - Anthropic provider not available")
	}

	// Lorem mock provider is always available for development and testing
	providers = append(providers, lorem.NewProvider())
	logger.Info("provider available", "name", "lorem", "models", "lorem-*")

	registry := NewRegistry(providers...)
	if _, err := registry.ProviderFor(cfg.DefaultModel); err != nil {
		return nil, fmt.Errorf("default model %q has no provider: %w", cfg.DefaultModel, err)
	}

	return registry, nil
}
