// Package seeder loads demo catalog data for local development.
package seeder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyankjain/shopform/internal/store"
	"github.com/priyankjain/shopform/internal/workerpool"
)

var demoProducts = []store.Product{
	{Name: "Trail Runner Shoes", Description: "Lightweight trail running shoes", Price: 89.99, Rating: 4, AvailableQty: 25},
	{Name: "Canvas Backpack", Description: "20L everyday canvas backpack", Price: 49.50, Rating: 5, AvailableQty: 40},
	{Name: "Steel Water Bottle", Description: "750ml insulated bottle", Price: 18.00, Rating: 4, AvailableQty: 120},
	{Name: "Yoga Mat", Description: "Non-slip 6mm yoga mat", Price: 29.99, Rating: 3, AvailableQty: 60},
	{Name: "Desk Lamp", Description: "Adjustable warm-light desk lamp", Price: 35.25, Rating: 4, AvailableQty: 15},
	{Name: "Bluetooth Speaker", Description: "Portable waterproof speaker", Price: 59.00, Rating: 5, AvailableQty: 30},
	{Name: "Chess Set", Description: "Folding wooden chess set", Price: 24.75, Rating: 5, AvailableQty: 18},
	{Name: "Cricket Bat", Description: "Grade 2 willow cricket bat", Price: 110.00, Rating: 4, AvailableQty: 8},
}

// Run inserts the demo products through the worker pool when the catalog is
// empty. Idempotent across restarts.
func Run(ctx context.Context, products *store.ProductStore, log zerolog.Logger) {
	page, err := products.List(ctx, store.ProductFilter{MaxPrice: 100000}, 1, 1)
	if err != nil {
		log.Warn().Err(err).Msg("seed check failed")
		return
	}
	if page.TotalItems > 0 {
		return
	}

	pool := workerpool.New(ctx, 4, len(demoProducts), log)
	for _, p := range demoProducts {
		pool.Submit(func(ctx context.Context) {
			if _, err := products.Insert(ctx, p); err != nil {
				log.Warn().Err(err).Str("product", p.Name).Msg("seeding product failed")
			}
		})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool.Shutdown(shutdownCtx)

	log.Info().Int("products", len(demoProducts)).Msg("demo catalog seeded")
}
