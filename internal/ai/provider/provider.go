// Package provider holds thin REST clients for the external AI
// services. Clients are constructor-injected so tests can swap fakes.
package provider

import "context"

type CompletionRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type CompletionResult struct {
	Text       string
	TokensUsed int
}

type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

type EmbeddingClient interface {
	Embed(ctx context.Context, model, text string) ([]float64, error)
}

// Match is one scored hit from the vector index.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

type VectorIndex interface {
	Upsert(ctx context.Context, id string, vector []float64, metadata map[string]any) error
	Query(ctx context.Context, vector []float64, topK int) ([]Match, error)
}
