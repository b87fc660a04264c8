package ai

import (
	"context"

	"github.com/brightsales/atlas/internal/ai/domain"
	"github.com/brightsales/atlas/internal/ai/provider"
	"github.com/brightsales/atlas/internal/ai/service"
	"github.com/brightsales/atlas/internal/ai/worker"
	"github.com/brightsales/atlas/internal/config"
	"github.com/brightsales/atlas/pkg/queue"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("ai.service",
	fx.Provide(NewRedisClient),
	fx.Provide(NewQueue),
	fx.Provide(NewCompletionClient),
	fx.Provide(NewEmbeddingClient),
	fx.Provide(NewVectorIndex),
	fx.Provide(service.New),
	fx.Provide(func(s *service.Service) domain.Service { return s }),
	fx.Invoke(worker.New),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewQueue(client *redis.Client) queue.Queue {
	return queue.NewRedisQueue(client, "atlas:embeddings")
}

func NewCompletionClient(cfg config.Config) provider.CompletionClient {
	return provider.NewOpenAICompletion(cfg.CompletionBaseURL, cfg.CompletionAPIKey)
}

func NewEmbeddingClient(cfg config.Config) provider.EmbeddingClient {
	return provider.NewOpenAIEmbedding(cfg.EmbeddingBaseURL, cfg.CompletionAPIKey)
}

func NewVectorIndex(cfg config.Config) provider.VectorIndex {
	return provider.NewRESTVectorIndex(cfg.VectorIndexURL, cfg.VectorAPIKey)
}
