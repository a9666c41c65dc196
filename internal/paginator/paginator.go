// Package paginator provides page/limit pagination over arbitrary queries.
package paginator

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	PrevPage    *int `json:"prev_page"`
	NextPage    *int `json:"next_page"`
	TotalItems  int  `json:"total_items"`
}

// Paginate runs query twice: once wrapped in COUNT(*) for the total, once
// with LIMIT/OFFSET appended for the page items.
func Paginate[T any](ctx context.Context, db *sqlx.DB, query string, args []any, page, limit int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS total_count", query)
	var totalItems int
	if err := db.GetContext(ctx, &totalItems, countQuery, args...); err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}
	totalPages := (totalItems + limit - 1) / limit

	items := []T{}
	pagedQuery := query + " LIMIT ? OFFSET ?"
	pagedArgs := append(append([]any{}, args...), limit, offset)
	if err := db.SelectContext(ctx, &items, pagedQuery, pagedArgs...); err != nil {
		return nil, fmt.Errorf("selecting page: %w", err)
	}

	var prevPage, nextPage *int
	if page > 1 {
		p := page - 1
		prevPage = &p
	}
	if page < totalPages {
		p := page + 1
		nextPage = &p
	}

	return &Page[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		PrevPage:    prevPage,
		NextPage:    nextPage,
		TotalItems:  totalItems,
	}, nil
}
