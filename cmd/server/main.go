package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/priyankjain/shopform/internal/config"
	"github.com/priyankjain/shopform/internal/logging"
	"github.com/priyankjain/shopform/internal/product"
	"github.com/priyankjain/shopform/internal/profile"
	"github.com/priyankjain/shopform/internal/seeder"
	"github.com/priyankjain/shopform/internal/server"
	"github.com/priyankjain/shopform/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		os.Stderr.WriteString("loading config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(os.Stderr, cfg.Logging.Level)

	db, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrating database")
	}
	log.Info().Str("path", cfg.Database.Path).Msg("database ready")

	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	cart := store.NewCartStore(db)
	records := store.NewSQLRecordStore(db)

	productSvc := product.NewService(products, cart, log)
	profileSvc := profile.NewService(records, log)

	if cfg.Seed {
		seeder.Run(ctx, products, log)
	}

	if err := server.Run(ctx, server.Config{
		Port:     cfg.Server.Port,
		Users:    users,
		Products: productSvc,
		Profiles: profileSvc,
		Log:      log,
	}); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
