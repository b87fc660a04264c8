// Package listing implements the shared filter/sort/paginate query
// builder used by every resource repository. Each repository supplies a
// Query describing its searchable columns, equality filters, and range
// filters; Find executes the page fetch and the total count
// concurrently and assembles the paginated envelope.
package listing

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Page carries client-supplied pagination and ordering.
type Page struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

func (p Page) withDefaults() Page {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	switch strings.ToLower(strings.TrimSpace(p.SortOrder)) {
	case "asc":
		p.SortOrder = "asc"
	default:
		p.SortOrder = "desc"
	}
	return p
}

// Condition is an equality filter on a single column. Repositories only
// append a Condition when the corresponding request field is present,
// so an absent filter never constrains the query.
type Condition struct {
	Column string
	Value  any
}

// Range bounds a column from below and/or above. A nil bound is open.
type Range struct {
	Column string
	Min    any
	Max    any
}

// Query describes how one entity type is filtered and ordered.
type Query struct {
	Search        string
	SearchColumns []string
	Conditions    []Condition
	Ranges        []Range

	// SortColumns whitelists API sort fields to column names. A SortBy
	// outside the whitelist falls back to DefaultSort.
	SortColumns map[string]string
	DefaultSort string
}

// Pagination is the envelope metadata block.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Result is the paginated envelope returned by every list operation.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Apply attaches the query's filter predicates to stmt.
func (q Query) Apply(stmt *gorm.DB) *gorm.DB {
	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(q.SearchColumns))
		args := make([]any, 0, len(q.SearchColumns))
		for _, col := range q.SearchColumns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		stmt = stmt.Where(strings.Join(clauses, " OR "), args...)
	}

	for _, cond := range q.Conditions {
		stmt = stmt.Where(cond.Column+" = ?", cond.Value)
	}

	for _, rng := range q.Ranges {
		if rng.Min != nil {
			stmt = stmt.Where(rng.Column+" >= ?", rng.Min)
		}
		if rng.Max != nil {
			stmt = stmt.Where(rng.Column+" <= ?", rng.Max)
		}
	}

	return stmt
}

func (q Query) orderClause(p Page) string {
	column, ok := q.SortColumns[strings.TrimSpace(p.SortBy)]
	if !ok || column == "" {
		column = q.DefaultSort
	}
	return column + " " + p.SortOrder
}

// Find runs the filtered page fetch and the unpaginated count
// concurrently and returns the envelope. The two reads are not wrapped
// in a transaction; a write landing between them can skew Total, which
// is accepted.
func Find[T any](ctx context.Context, base *gorm.DB, q Query, p Page, preloads ...string) (Result[T], error) {
	p = p.withDefaults()

	var (
		data  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stmt := q.Apply(base.WithContext(gctx).Model(new(T)))
		for _, preload := range preloads {
			stmt = stmt.Preload(preload)
		}
		return stmt.
			Order(q.orderClause(p)).
			Offset((p.Page - 1) * p.Limit).
			Limit(p.Limit).
			Find(&data).Error
	})

	g.Go(func() error {
		return q.Apply(base.WithContext(gctx).Model(new(T))).Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		return Result[T]{}, err
	}

	if data == nil {
		data = make([]T, 0)
	}

	return Result[T]{
		Data: data,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
			Pages: pages(total, p.Limit),
		},
	}, nil
}

func pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
