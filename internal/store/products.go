package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/priyankjain/shopform/internal/paginator"
	"github.com/priyankjain/shopform/pkg/fault"
)

// Product is one catalog item.
type Product struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Description  string  `db:"description" json:"description"`
	Price        float64 `db:"price" json:"price"`
	Rating       int     `db:"rating" json:"rating"`
	Image        *string `db:"image" json:"image,omitempty"`
	AvailableQty int     `db:"available_qty" json:"available_qty"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Search    string
	MinPrice  float64
	MaxPrice  float64
	MinRating int
}

// ProductStore persists the product catalog.
type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Insert(ctx context.Context, p Product) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, rating, image, available_qty)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Rating, p.Image, p.AvailableQty)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading product id: %w", err)
	}
	return id, nil
}

// List returns one page of products matching the filter, newest first. The
// search term matches name, description, or price text.
func (s *ProductStore) List(ctx context.Context, f ProductFilter, page, limit int) (*paginator.Page[Product], error) {
	if f.MaxPrice <= 0 {
		f.MaxPrice = 1000
	}
	query := `
		SELECT id, name, description, price, rating, image, available_qty
		FROM products
		WHERE (
			LOWER(name) LIKE LOWER(?) OR
			LOWER(description) LIKE LOWER(?) OR
			CAST(price AS TEXT) LIKE ?
		)
		AND price BETWEEN ? AND ?
		AND rating >= ?
		ORDER BY id DESC`
	like := "%" + f.Search + "%"
	args := []any{like, like, like, f.MinPrice, f.MaxPrice, f.MinRating}
	return paginator.Paginate[Product](ctx, s.db, query, args, page, limit)
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p,
		`SELECT id, name, description, price, rating, image, available_qty
		 FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %d: %w", id, err)
	}
	return &p, nil
}

func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.ErrNotFound
	}
	return nil
}

// AdjustStock adds delta (may be negative) to a product's available
// quantity. Stock never goes below zero.
func (s *ProductStore) AdjustStock(ctx context.Context, id int64, delta int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET available_qty = MAX(available_qty + ?, 0) WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("adjusting stock for product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.ErrNotFound
	}
	return nil
}
