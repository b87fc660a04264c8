package listing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type widget struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Kind      string
	Price     float64
	CreatedAt time.Time
}

func setupWidgets(t *testing.T, n int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:listing_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		kind := "standard"
		if i%5 == 0 {
			kind = "premium"
		}
		if err := db.Create(&widget{
			ID:        int64(i),
			Name:      fmt.Sprintf("Widget %02d", i),
			Kind:      kind,
			Price:     float64(i * 10),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func widgetQuery() Query {
	return Query{
		SearchColumns: []string{"name"},
		SortColumns:   map[string]string{"name": "name", "price": "price", "createdAt": "created_at"},
		DefaultSort:   "created_at",
	}
}

func TestFind_PageMath(t *testing.T) {
	db := setupWidgets(t, 25)
	ctx := context.Background()

	result, err := Find[widget](ctx, db, widgetQuery(), Page{})
	assert.NoError(t, err)
	assert.Len(t, result.Data, 20)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 20, result.Pagination.Limit)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.Pages)

	second, err := Find[widget](ctx, db, widgetQuery(), Page{Page: 2})
	assert.NoError(t, err)
	assert.Len(t, second.Data, 5)
	assert.Equal(t, 2, second.Pagination.Pages)

	sized, err := Find[widget](ctx, db, widgetQuery(), Page{Limit: 7})
	assert.NoError(t, err)
	assert.Len(t, sized.Data, 7)
	assert.Equal(t, 4, sized.Pagination.Pages)
}

func TestFind_BeyondRangePage(t *testing.T) {
	db := setupWidgets(t, 5)

	result, err := Find[widget](context.Background(), db, widgetQuery(), Page{Page: 50})
	assert.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.NotNil(t, result.Data)
	assert.Equal(t, int64(5), result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.Pages)
}

func TestFind_SearchCaseInsensitive(t *testing.T) {
	db := setupWidgets(t, 12)
	q := widgetQuery()
	q.Search = "WIDGET 0"

	result, err := Find[widget](context.Background(), db, q, Page{})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), result.Pagination.Total)
}

func TestFind_FilterMonotonicity(t *testing.T) {
	db := setupWidgets(t, 20)
	ctx := context.Background()

	all, err := Find[widget](ctx, db, widgetQuery(), Page{})
	assert.NoError(t, err)

	filtered := widgetQuery()
	filtered.Conditions = []Condition{{Column: "kind", Value: "premium"}}
	narrow, err := Find[widget](ctx, db, filtered, Page{})
	assert.NoError(t, err)

	assert.LessOrEqual(t, narrow.Pagination.Total, all.Pagination.Total)
	assert.Equal(t, int64(4), narrow.Pagination.Total)
	for _, w := range narrow.Data {
		assert.Equal(t, "premium", w.Kind)
	}
}

func TestFind_RangeBounds(t *testing.T) {
	db := setupWidgets(t, 10)
	q := widgetQuery()
	q.Ranges = []Range{{Column: "price", Min: 30.0, Max: 70.0}}

	result, err := Find[widget](context.Background(), db, q, Page{})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.Pagination.Total)
	for _, w := range result.Data {
		assert.GreaterOrEqual(t, w.Price, 30.0)
		assert.LessOrEqual(t, w.Price, 70.0)
	}
}

func TestFind_SortWhitelist(t *testing.T) {
	db := setupWidgets(t, 6)
	ctx := context.Background()

	asc, err := Find[widget](ctx, db, widgetQuery(), Page{SortBy: "price", SortOrder: "asc"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), asc.Data[0].ID)

	// unknown sort field falls back to the default sort, newest first
	fallback, err := Find[widget](ctx, db, widgetQuery(), Page{SortBy: "id; DROP TABLE widgets"})
	assert.NoError(t, err)
	assert.Equal(t, int64(6), fallback.Data[0].ID)
}
