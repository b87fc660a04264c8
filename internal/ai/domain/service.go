package domain

import (
	"context"
	"errors"
	"time"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
)

// SemanticMatch is one hit from the vector index.
type SemanticMatch struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchData bundles the keyword lookups plus the optional semantic
// hits. Semantic stays nil when the vector side is unavailable, and
// serializes as an explicit null so clients can tell degraded from
// empty.
type SearchData struct {
	Companies     []companydomain.Company         `json:"companies"`
	Opportunities []opportunitydomain.Opportunity `json:"opportunities"`
	Semantic      []SemanticMatch                 `json:"semantic"`
}

type SearchResult struct {
	Query     string     `json:"query"`
	Response  string     `json:"response"`
	Data      SearchData `json:"data"`
	Timestamp time.Time  `json:"timestamp"`
}

type Service interface {
	Search(ctx context.Context, query string) (SearchResult, error)
	Complete(ctx context.Context, prompt string) (string, error)
	EnqueueEmbedding(ctx context.Context, text string, metadata map[string]any) (string, error)
}

var (
	ErrEmptyQuery  = errors.New("empty_query")
	ErrEmptyPrompt = errors.New("empty_prompt")
)
