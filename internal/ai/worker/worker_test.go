package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	aidomain "github.com/brightsales/atlas/internal/ai/domain"
	"github.com/brightsales/atlas/internal/ai/provider"
	"github.com/brightsales/atlas/internal/ai/service"
	companyrepository "github.com/brightsales/atlas/internal/company/repository"
	"github.com/brightsales/atlas/internal/config"
	opportunityrepository "github.com/brightsales/atlas/internal/opportunity/repository"
	"github.com/brightsales/atlas/pkg/queue"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeEmbedding struct {
	vector []float64
	err    error
}

func (f *fakeEmbedding) Embed(context.Context, string, string) ([]float64, error) {
	return f.vector, f.err
}

type fakeCompletion struct{}

func (fakeCompletion) Complete(context.Context, provider.CompletionRequest) (provider.CompletionResult, error) {
	return provider.CompletionResult{}, nil
}

type fakeVector struct {
	upserted []string
	err      error
}

func (f *fakeVector) Upsert(_ context.Context, id string, _ []float64, _ map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, id)
	return nil
}

func (f *fakeVector) Query(context.Context, []float64, int) ([]provider.Match, error) {
	return nil, nil
}

type fakeQueue struct{}

func (fakeQueue) Enqueue(context.Context, queue.Job) error { return nil }
func (fakeQueue) Dequeue(context.Context, time.Duration) (*queue.Job, error) {
	return nil, nil
}
func (fakeQueue) Depth(context.Context) (int64, error) { return 0, nil }

func setupWorker(t *testing.T, embedding *fakeEmbedding, vector *fakeVector) (*Worker, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&aidomain.Embedding{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	svc := service.New(service.Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		AIConfig:        config.StaticAIConfig(config.AIConfig{RetryAttempts: 1, RetryInitial: time.Millisecond}),
		Completion:      fakeCompletion{},
		Embedding:       embedding,
		Vector:          vector,
		Queue:           fakeQueue{},
		CompanyRepo:     companyrepository.Provide(),
		OpportunityRepo: opportunityrepository.Provide(),
	})

	w := &Worker{
		log:     zap.NewNop(),
		queue:   fakeQueue{},
		vector:  vector,
		service: svc,
		done:    make(chan struct{}),
	}
	return w, db
}

func TestProcess_EmbedsAndRecords(t *testing.T) {
	vector := &fakeVector{}
	w, db := setupWorker(t, &fakeEmbedding{vector: []float64{0.5, 0.25}}, vector)

	w.process(context.Background(), queue.Job{
		ID:       "01JOB",
		Text:     "quarterly renewal notes",
		Metadata: map[string]any{"entity": "company"},
	})

	assert.Equal(t, []string{"01JOB"}, vector.upserted)

	var rows []aidomain.Embedding
	assert.NoError(t, db.Find(&rows).Error)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "01JOB", rows[0].ID)
	}
}

func TestProcess_EmbedFailureDropsJob(t *testing.T) {
	vector := &fakeVector{}
	w, db := setupWorker(t, &fakeEmbedding{err: errors.New("embedding down")}, vector)

	w.process(context.Background(), queue.Job{ID: "01JOB", Text: "notes"})

	assert.Empty(t, vector.upserted)

	var count int64
	assert.NoError(t, db.Model(&aidomain.Embedding{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcess_UpsertFailureDropsJob(t *testing.T) {
	vector := &fakeVector{err: errors.New("index down")}
	w, db := setupWorker(t, &fakeEmbedding{vector: []float64{0.5}}, vector)

	w.process(context.Background(), queue.Job{ID: "01JOB", Text: "notes"})

	var count int64
	assert.NoError(t, db.Model(&aidomain.Embedding{}).Count(&count).Error)
	assert.Zero(t, count)
}
