// Package worker drains the embedding queue in the background. Jobs
// that fail are logged and dropped; producers never wait on them.
package worker

import (
	"context"
	"time"

	"github.com/brightsales/atlas/internal/ai/provider"
	"github.com/brightsales/atlas/internal/ai/service"
	"github.com/brightsales/atlas/internal/observability/metrics"
	"github.com/brightsales/atlas/pkg/queue"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dequeueTimeout = 5 * time.Second

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Log       *zap.Logger
	Metrics   *metrics.HTTPMetrics
	Queue     queue.Queue
	Vector    provider.VectorIndex
	Service   *service.Service
}

type Worker struct {
	log     *zap.Logger
	metrics *metrics.HTTPMetrics
	queue   queue.Queue
	vector  provider.VectorIndex
	service *service.Service

	cancel context.CancelFunc
	done   chan struct{}
}

func New(p Params) *Worker {
	w := &Worker{
		log:     p.Log.Named("ai.worker"),
		metrics: p.Metrics,
		queue:   p.Queue,
		vector:  p.Vector,
		service: p.Service,
		done:    make(chan struct{}),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			w.cancel = cancel
			go w.run(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.cancel()
			select {
			case <-w.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return w
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.log.Info("embedding worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("embedding worker stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Info("embedding worker stopped")
				return
			}
			w.log.Error("dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		w.process(ctx, *job)

		if depth, err := w.queue.Depth(ctx); err == nil {
			w.metrics.SetQueueDepth(depth)
		}
	}
}

func (w *Worker) process(ctx context.Context, job queue.Job) {
	log := w.log.With(zap.String("job_id", job.ID))

	vector, err := w.service.EmbedText(ctx, job.Text)
	if err != nil {
		log.Error("embedding failed, dropping job", zap.Error(err))
		w.metrics.RecordEmbeddingJob(err)
		return
	}

	if err := w.vector.Upsert(ctx, job.ID, vector, job.Metadata); err != nil {
		log.Error("vector upsert failed, dropping job", zap.Error(err))
		w.metrics.RecordEmbeddingJob(err)
		return
	}

	if err := w.service.InsertEmbedding(ctx, job.ID, vector, job.Metadata); err != nil {
		log.Error("embedding record insert failed, dropping job", zap.Error(err))
		w.metrics.RecordEmbeddingJob(err)
		return
	}

	w.metrics.RecordEmbeddingJob(nil)
	log.Debug("job embedded")
}
