package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brightsales/atlas/internal/ai/domain"
	"github.com/brightsales/atlas/internal/ai/provider"
	"github.com/brightsales/atlas/internal/ai/retry"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/internal/config"
	"github.com/brightsales/atlas/internal/observability/metrics"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/brightsales/atlas/pkg/queue"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const keywordLimit = 10

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Metrics         *metrics.HTTPMetrics
	AIConfig        *config.AIConfigHolder
	Completion      provider.CompletionClient
	Embedding       provider.EmbeddingClient
	Vector          provider.VectorIndex
	Queue           queue.Queue
	CompanyRepo     companydomain.Repository
	OpportunityRepo opportunitydomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	metrics         *metrics.HTTPMetrics
	aiConfig        *config.AIConfigHolder
	completion      provider.CompletionClient
	embedding       provider.EmbeddingClient
	vector          provider.VectorIndex
	queue           queue.Queue
	companyRepo     companydomain.Repository
	opportunityRepo opportunitydomain.Repository
	entropy         *ulid.MonotonicEntropy
}

func New(p Params) *Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("ai.service"),
		genID:           p.GenID,
		metrics:         p.Metrics,
		aiConfig:        p.AIConfig,
		completion:      p.Completion,
		embedding:       p.Embedding,
		vector:          p.Vector,
		queue:           p.Queue,
		companyRepo:     p.CompanyRepo,
		opportunityRepo: p.OpportunityRepo,
		entropy:         ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (s *Service) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, domain.ErrEmptyQuery
	}

	data := domain.SearchData{
		Semantic: s.semanticSearch(ctx, query),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.companyRepo.List(gctx, s.db,
			companydomain.ListCompanyFilter{Search: query},
			listing.Page{Limit: keywordLimit})
		if err != nil {
			return err
		}
		data.Companies = result.Data
		return nil
	})
	g.Go(func() error {
		result, err := s.opportunityRepo.List(gctx, s.db,
			opportunitydomain.ListOpportunityFilter{Search: query},
			listing.Page{Limit: keywordLimit})
		if err != nil {
			return err
		}
		data.Opportunities = result.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.SearchResult{}, err
	}

	response, err := s.Complete(ctx, searchPrompt(query, data))
	if err != nil {
		return domain.SearchResult{}, err
	}

	return domain.SearchResult{
		Query:     query,
		Response:  response,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}

	cfg := s.aiConfig.Current()
	policy := retry.Policy{Attempts: cfg.RetryAttempts, InitialDelay: cfg.RetryInitial}

	result, err := retry.Do(ctx, s.log, "completion", policy, func(ctx context.Context) (provider.CompletionResult, error) {
		return s.completion.Complete(ctx, provider.CompletionRequest{
			Model:       cfg.CompletionModel,
			Prompt:      prompt,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	})
	s.metrics.RecordAICall("completion", err)
	s.logPrompt(ctx, cfg.CompletionModel, prompt, result.Text, result.TokensUsed)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// EmbedText runs a retry-wrapped embedding call. The worker uses it as
// well as the semantic search path.
func (s *Service) EmbedText(ctx context.Context, text string) ([]float64, error) {
	cfg := s.aiConfig.Current()
	policy := retry.Policy{Attempts: cfg.RetryAttempts, InitialDelay: cfg.RetryInitial}

	vector, err := retry.Do(ctx, s.log, "embedding", policy, func(ctx context.Context) ([]float64, error) {
		return s.embedding.Embed(ctx, cfg.EmbeddingModel, text)
	})
	s.metrics.RecordAICall("embedding", err)
	return vector, err
}

func (s *Service) EnqueueEmbedding(ctx context.Context, text string, metadata map[string]any) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	err := s.queue.Enqueue(ctx, queue.Job{ID: id, Text: text, Metadata: metadata})
	if err != nil {
		return "", err
	}
	return id, nil
}

// semanticSearch returns nil on any failure so keyword results still
// come back when the vector side is down.
func (s *Service) semanticSearch(ctx context.Context, query string) []domain.SemanticMatch {
	vector, err := s.EmbedText(ctx, query)
	if err != nil {
		s.log.Warn("semantic search unavailable", zap.Error(err))
		return nil
	}

	cfg := s.aiConfig.Current()
	matches, err := s.vector.Query(ctx, vector, cfg.TopK)
	if err != nil {
		s.log.Warn("vector query failed", zap.Error(err))
		return nil
	}

	out := make([]domain.SemanticMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, domain.SemanticMatch{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return out
}

// logPrompt persists the audit row best-effort. A failed insert is
// logged and never surfaces to the caller.
func (s *Service) logPrompt(ctx context.Context, model, prompt, response string, tokens int) {
	row := domain.PromptLog{
		ID:         s.genID.Generate().Int64(),
		Model:      model,
		Prompt:     prompt,
		Response:   response,
		TokensUsed: tokens,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Warn("prompt log insert failed", zap.Error(err))
	}
}

// InsertEmbedding records the audit row written after a queued job has
// been embedded and upserted.
func (s *Service) InsertEmbedding(ctx context.Context, id string, vector []float64, metadata map[string]any) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	cfg := s.aiConfig.Current()
	row := domain.Embedding{
		ID:        id,
		Model:     cfg.EmbeddingModel,
		Vector:    datatypes.JSON(encoded),
		Metadata:  datatypes.JSONMap(metadata),
		CreatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func searchPrompt(query string, data domain.SearchData) string {
	var b strings.Builder
	b.WriteString("You are a CRM assistant. Answer the user's question using only the records below.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nCompanies:\n", query)
	if len(data.Companies) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range data.Companies {
		fmt.Fprintf(&b, "  - %s (industry: %s, website: %s)\n", c.Name, orDash(c.Industry), orDash(c.Website))
	}
	b.WriteString("\nOpportunities:\n")
	if len(data.Opportunities) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, o := range data.Opportunities {
		amount := "-"
		if o.Amount != nil {
			amount = fmt.Sprintf("%.2f", *o.Amount)
		}
		fmt.Fprintf(&b, "  - %s (status: %s, amount: %s)\n", o.Title, o.Status, amount)
	}
	b.WriteString("\nAnswer concisely.")
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
