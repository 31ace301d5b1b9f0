package llm

import (
	"context"
)

// GenerateRequest is a single text-completion request. The application makes
// at most one attempt per user action: no retries, no app-level timeout beyond
// the request context.
type GenerateRequest struct {
	Model     string
	System    string
	Prompt    string
	MaxTokens int
}

// DefaultMaxTokens is used when a request does not set MaxTokens.
const DefaultMaxTokens = 4096

// EffectiveMaxTokens returns MaxTokens or the default.
func (r *GenerateRequest) EffectiveMaxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// Provider is a text-generation backend. The rest of the application treats
// it as an opaque collaborator: prompt in, text out, or an error.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// SupportsModel returns true if this provider serves the given model.
	SupportsModel(model string) bool

	// GenerateText generates a complete response for the request.
	GenerateText(ctx context.Context, req *GenerateRequest) (string, error)
}

// Generator is the minimal surface study-aid services depend on: route a
// request to whichever provider serves its model.
type Generator interface {
	GenerateText(ctx context.Context, req *GenerateRequest) (string, error)
}
