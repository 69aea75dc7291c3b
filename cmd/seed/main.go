// Command seed loads the demo users and properties. Safe to run repeatedly.
package main

import (
	"context"
	"os"

	"github.com/staynest/booking-api/internal/core/service"
	"github.com/staynest/booking-api/internal/infrastructure/db/postgres"
	"github.com/staynest/booking-api/internal/pkg/config"
	"github.com/staynest/booking-api/internal/pkg/password"
	"github.com/staynest/booking-api/internal/pkg/token"
	"github.com/staynest/booking-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development(), Service: "booking-seed"})

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() { _ = postgres.Close(db) }()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	tokens, err := token.NewManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager")
	}

	users := postgres.NewUserRepository(db)
	auth := service.NewAuthService(users, password.NewHasher(), tokens, log)
	seeder := service.NewSeeder(auth, users, postgres.NewPropertyRepository(db), log)

	if err := seeder.Seed(ctx, service.DemoUsers, service.DemoProperties); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
	log.Info().Msg("data has been seeded")
}
