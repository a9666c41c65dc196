package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CartRow is one (user, product) membership row. A row can sit in the
// wishlist, the cart, or both; quantity only matters for the cart.
type CartRow struct {
	ID        int64 `db:"id" json:"id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	Wishlist  bool  `db:"wishlist" json:"wishlist"`
	InCart    bool  `db:"cart" json:"cart"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

// CartItem joins a cart row with its product for listings.
type CartItem struct {
	CartID   int64 `db:"cart_id" json:"cart_id"`
	Quantity int   `db:"quantity" json:"quantity"`
	Product  `json:"product"`
}

// CartStore persists cart and wishlist membership.
type CartStore struct {
	db *sqlx.DB
}

func NewCartStore(db *sqlx.DB) *CartStore {
	return &CartStore{db: db}
}

// Upsert creates the (user, product) row or patches its flags in place.
// Nil flag pointers leave the stored flag untouched.
func (s *CartStore) Upsert(ctx context.Context, userID, productID int64, wishlist, inCart *bool, quantity int) error {
	var row CartRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, product_id, user_id, wishlist, cart, quantity
		 FROM cart WHERE product_id = ? AND user_id = ?`, productID, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		w, c := false, false
		if wishlist != nil {
			w = *wishlist
		}
		if inCart != nil {
			c = *inCart
		}
		if quantity <= 0 {
			quantity = 1
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO cart (product_id, user_id, wishlist, cart, quantity)
			 VALUES (?, ?, ?, ?, ?)`, productID, userID, w, c, quantity)
		if err != nil {
			return fmt.Errorf("inserting cart row: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("loading cart row: %w", err)
	}

	w, c := row.Wishlist, row.InCart
	if wishlist != nil {
		w = *wishlist
	}
	if inCart != nil {
		c = *inCart
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE cart SET wishlist = ?, cart = ? WHERE id = ?`, w, c, row.ID); err != nil {
		return fmt.Errorf("updating cart row: %w", err)
	}
	return nil
}

// CartItems lists the products currently in a user's cart.
func (s *CartStore) CartItems(ctx context.Context, userID int64) ([]CartItem, error) {
	items := []CartItem{}
	err := s.db.SelectContext(ctx, &items,
		`SELECT cart.id AS cart_id, cart.quantity,
			products.id, products.name, products.description, products.price,
			products.rating, products.image, products.available_qty
		 FROM cart
		 INNER JOIN products ON cart.product_id = products.id
		 WHERE cart.user_id = ? AND cart.cart = 1`, userID)
	if err != nil {
		return nil, fmt.Errorf("loading cart items: %w", err)
	}
	return items, nil
}

// WishlistItems lists the products on a user's wishlist.
func (s *CartStore) WishlistItems(ctx context.Context, userID int64) ([]CartItem, error) {
	items := []CartItem{}
	err := s.db.SelectContext(ctx, &items,
		`SELECT cart.id AS cart_id, cart.quantity,
			products.id, products.name, products.description, products.price,
			products.rating, products.image, products.available_qty
		 FROM cart
		 INNER JOIN products ON cart.product_id = products.id
		 WHERE cart.user_id = ? AND cart.wishlist = 1`, userID)
	if err != nil {
		return nil, fmt.Errorf("loading wishlist items: %w", err)
	}
	return items, nil
}

// AddQuantity bumps the cart quantity for a (user, product) row by delta;
// quantity floors at 1.
func (s *CartStore) AddQuantity(ctx context.Context, userID, productID int64, delta int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE cart SET quantity = MAX(quantity + ?, 1)
		 WHERE user_id = ? AND product_id = ?`, delta, userID, productID)
	if err != nil {
		return fmt.Errorf("adjusting quantity: %w", err)
	}
	return nil
}

// ClearCart drops the in-cart flag for all of a user's rows, keeping
// wishlist membership.
func (s *CartStore) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE cart SET cart = 0, quantity = 0 WHERE user_id = ? AND cart = 1`, userID)
	if err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}
