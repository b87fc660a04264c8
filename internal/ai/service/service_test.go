package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	aidomain "github.com/brightsales/atlas/internal/ai/domain"
	"github.com/brightsales/atlas/internal/ai/provider"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	companyrepository "github.com/brightsales/atlas/internal/company/repository"
	"github.com/brightsales/atlas/internal/config"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	opportunityrepository "github.com/brightsales/atlas/internal/opportunity/repository"
	"github.com/brightsales/atlas/pkg/queue"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -- Fakes --

type fakeCompletion struct {
	calls int
	text  string
	err   error
}

func (f *fakeCompletion) Complete(context.Context, provider.CompletionRequest) (provider.CompletionResult, error) {
	f.calls++
	if f.err != nil {
		return provider.CompletionResult{}, f.err
	}
	return provider.CompletionResult{Text: f.text, TokensUsed: 42}, nil
}

type fakeEmbedding struct {
	calls  int
	vector []float64
	err    error
}

func (f *fakeEmbedding) Embed(context.Context, string, string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeVector struct {
	upserts int
	matches []provider.Match
	err     error
}

func (f *fakeVector) Upsert(context.Context, string, []float64, map[string]any) error {
	f.upserts++
	return f.err
}

func (f *fakeVector) Query(context.Context, []float64, int) ([]provider.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

type fakeQueue struct {
	jobs []queue.Job
}

func (f *fakeQueue) Enqueue(_ context.Context, job queue.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Dequeue(context.Context, time.Duration) (*queue.Job, error) {
	if len(f.jobs) == 0 {
		return nil, nil
	}
	job := f.jobs[0]
	f.jobs = f.jobs[1:]
	return &job, nil
}

func (f *fakeQueue) Depth(context.Context) (int64, error) {
	return int64(len(f.jobs)), nil
}

// -- Setup --

type fixture struct {
	svc        *Service
	db         *gorm.DB
	completion *fakeCompletion
	embedding  *fakeEmbedding
	vector     *fakeVector
	queue      *fakeQueue
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:ai_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(
		&companydomain.Company{},
		&contactdomain.Contact{},
		&opportunitydomain.Opportunity{},
		&aidomain.PromptLog{},
		&aidomain.Embedding{},
	); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		db:         db,
		completion: &fakeCompletion{text: "Here is what I found."},
		embedding:  &fakeEmbedding{vector: []float64{0.1, 0.2}},
		vector:     &fakeVector{matches: []provider.Match{{ID: "m1", Score: 0.9}}},
		queue:      &fakeQueue{},
	}
	f.svc = New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		AIConfig:        config.StaticAIConfig(config.AIConfig{RetryAttempts: 2, RetryInitial: time.Millisecond}),
		Completion:      f.completion,
		Embedding:       f.embedding,
		Vector:          f.vector,
		Queue:           f.queue,
		CompanyRepo:     companyrepository.Provide(),
		OpportunityRepo: opportunityrepository.Provide(),
	})
	return f
}

func (f *fixture) seedCompany(t *testing.T, name string) {
	t.Helper()

	node, _ := snowflake.NewNode(2)
	if err := f.db.Create(&companydomain.Company{ID: node.Generate().Int64(), Name: name}).Error; err != nil {
		t.Fatal(err)
	}
}

// -- Tests --

func TestSearch_EmptyQueryRejected(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, aidomain.ErrEmptyQuery)
}

func TestSearch_BundlesKeywordAndSemantic(t *testing.T) {
	f := setupFixture(t)
	f.seedCompany(t, "Acme Widgets")

	result, err := f.svc.Search(context.Background(), "acme")
	assert.NoError(t, err)
	assert.Equal(t, "acme", result.Query)
	assert.Equal(t, "Here is what I found.", result.Response)
	assert.Len(t, result.Data.Companies, 1)
	assert.Len(t, result.Data.Semantic, 1)
	assert.Equal(t, "m1", result.Data.Semantic[0].ID)
	assert.False(t, result.Timestamp.IsZero())
}

func TestSearch_SemanticFailureDegrades(t *testing.T) {
	f := setupFixture(t)
	f.seedCompany(t, "Acme Widgets")
	f.embedding.err = errors.New("embedding down")

	result, err := f.svc.Search(context.Background(), "acme")
	assert.NoError(t, err)
	assert.Nil(t, result.Data.Semantic)
	assert.Len(t, result.Data.Companies, 1)
	assert.Equal(t, "Here is what I found.", result.Response)

	// degraded responses keep the key as an explicit null
	encoded, err := json.Marshal(result.Data)
	assert.NoError(t, err)
	assert.Contains(t, string(encoded), `"semantic":null`)
}

func TestComplete_RetriesAndLogsPrompt(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Complete(context.Background(), "")
	assert.ErrorIs(t, err, aidomain.ErrEmptyPrompt)

	response, err := f.svc.Complete(context.Background(), "Draft a follow-up email")
	assert.NoError(t, err)
	assert.Equal(t, "Here is what I found.", response)

	var logs []aidomain.PromptLog
	assert.NoError(t, f.db.Find(&logs).Error)
	if assert.Len(t, logs, 1) {
		assert.Equal(t, "Draft a follow-up email", logs[0].Prompt)
		assert.Equal(t, 42, logs[0].TokensUsed)
	}
}

func TestComplete_FailureStillLogged(t *testing.T) {
	f := setupFixture(t)
	f.completion.err = errors.New("provider down")

	_, err := f.svc.Complete(context.Background(), "Draft a follow-up email")
	assert.Error(t, err)
	assert.Equal(t, 2, f.completion.calls)

	var count int64
	assert.NoError(t, f.db.Model(&aidomain.PromptLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnqueueEmbedding(t *testing.T) {
	f := setupFixture(t)

	id, err := f.svc.EnqueueEmbedding(context.Background(), "Acme renewal notes", map[string]any{"entity": "company"})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	if assert.Len(t, f.queue.jobs, 1) {
		assert.Equal(t, id, f.queue.jobs[0].ID)
		assert.Equal(t, "Acme renewal notes", f.queue.jobs[0].Text)
	}
}
