// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/priyankjain/shopform/internal/handler"
	"github.com/priyankjain/shopform/internal/product"
	"github.com/priyankjain/shopform/internal/profile"
	"github.com/priyankjain/shopform/internal/session"
	"github.com/priyankjain/shopform/internal/store"
	"github.com/priyankjain/shopform/internal/wire"
)

// Config holds server dependencies and settings.
type Config struct {
	Port     int
	Users    *store.UserStore
	Products *product.Service
	Profiles *profile.Service
	Log      zerolog.Logger
}

// Run starts the HTTP server with all routes registered and shuts it down
// when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()
	r.Use(handler.Recovery(cfg.Log))
	r.Use(handler.Logging(cfg.Log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	uh := handler.NewUserHandler(cfg.Users)
	r.Post("/v1/users/register", uh.Register)
	r.Post("/v1/users/login", uh.Login)
	r.Get("/v1/users", uh.List)

	ph := handler.NewProductHandler(cfg.Products)
	r.Post("/v1/products", ph.Create)
	r.Get("/v1/products", ph.List)
	r.Delete("/v1/products/{id}", ph.Delete)
	r.Post("/v1/cart/toggle", ph.ToggleCart)
	r.Post("/v1/wishlist/toggle", ph.ToggleWishlist)
	r.Post("/v1/cart/quantity", ph.AdjustQuantity)
	r.Get("/v1/users/{userID}/cart", ph.CartItems)
	r.Get("/v1/users/{userID}/wishlist", ph.WishlistItems)
	r.Post("/v1/users/{userID}/checkout", ph.Checkout)

	rh := handler.NewRecordHandler(cfg.Profiles)
	r.Post("/v1/profile-records", rh.Create)
	r.Get("/v1/profile-records/{id}", rh.Get)
	r.Put("/v1/profile-records/{id}", rh.Update)
	r.Get("/v1/users/{ownerID}/profile-records", rh.ListByOwner)

	sessions := session.NewManager(2*time.Hour, 30*time.Minute)
	wsHandler := wire.NewHandler(sessions, cfg.Profiles, cfg.Log)
	r.Get("/ws/builder", wsHandler.ServeHTTP)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.Cleanup()
			}
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	cfg.Log.Info().Str("addr", addr).Msg("starting server")

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
