// Package product covers the catalog and cart/wishlist workflows around
// the record engine: browsing with filters and pages, toggling items, and
// checkout's stock decrement.
package product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/priyankjain/shopform/internal/paginator"
	"github.com/priyankjain/shopform/internal/store"
	"github.com/priyankjain/shopform/pkg/fault"
)

// DefaultPageSize matches the catalog browsing page length.
const DefaultPageSize = 7

// Service wraps the product and cart stores with the shop workflows.
type Service struct {
	products *store.ProductStore
	cart     *store.CartStore
	log      zerolog.Logger
}

func NewService(products *store.ProductStore, cart *store.CartStore, log zerolog.Logger) *Service {
	return &Service{products: products, cart: cart, log: log}
}

func (s *Service) Add(ctx context.Context, p store.Product) (int64, error) {
	if p.Name == "" {
		return 0, fault.NewClientError("product name is required", nil)
	}
	return s.products.Insert(ctx, p)
}

func (s *Service) List(ctx context.Context, f store.ProductFilter, page, limit int) (*paginator.Page[store.Product], error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.products.List(ctx, f, page, limit)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// ToggleCart sets or clears a product's in-cart flag for the user.
func (s *Service) ToggleCart(ctx context.Context, userID, productID int64, inCart bool) error {
	return s.cart.Upsert(ctx, userID, productID, nil, &inCart, 1)
}

// ToggleWishlist sets or clears a product's wishlist flag for the user.
func (s *Service) ToggleWishlist(ctx context.Context, userID, productID int64, wished bool) error {
	return s.cart.Upsert(ctx, userID, productID, &wished, nil, 1)
}

func (s *Service) CartItems(ctx context.Context, userID int64) ([]store.CartItem, error) {
	return s.cart.CartItems(ctx, userID)
}

func (s *Service) WishlistItems(ctx context.Context, userID int64) ([]store.CartItem, error) {
	return s.cart.WishlistItems(ctx, userID)
}

func (s *Service) AdjustQuantity(ctx context.Context, userID, productID int64, delta int) error {
	return s.cart.AddQuantity(ctx, userID, productID, delta)
}

// Checkout decrements stock for everything in the user's cart, then empties
// the cart. Wishlist membership survives checkout.
func (s *Service) Checkout(ctx context.Context, userID int64) error {
	items, err := s.cart.CartItems(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fault.NewClientError("cart is empty", nil)
	}

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		if err := s.products.AdjustStock(ctx, item.Product.ID, -qty); err != nil {
			return fmt.Errorf("decrementing stock for product %d: %w", item.Product.ID, err)
		}
	}
	if err := s.cart.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", userID).Int("items", len(items)).Msg("checkout complete")
	return nil
}
