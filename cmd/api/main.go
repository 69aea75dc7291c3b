// Command api serves the booking REST API.
//
// @title                       Booking API
// @version                     1.0
// @description                 Registration, login and bookings for a rental platform.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/api"
	"github.com/staynest/booking-api/internal/api/handler"
	"github.com/staynest/booking-api/internal/core/ports"
	"github.com/staynest/booking-api/internal/core/service"
	"github.com/staynest/booking-api/internal/infrastructure/db/mongo"
	"github.com/staynest/booking-api/internal/infrastructure/db/postgres"
	"github.com/staynest/booking-api/internal/infrastructure/db/redis"
	"github.com/staynest/booking-api/internal/infrastructure/queue"
	"github.com/staynest/booking-api/internal/infrastructure/reporting"
	"github.com/staynest/booking-api/internal/pkg/config"
	"github.com/staynest/booking-api/internal/pkg/password"
	"github.com/staynest/booking-api/internal/pkg/token"
	"github.com/staynest/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := logger.Init(logger.Options{})
		l.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "booking-api",
	})

	// --- Relational store ---
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	checks := map[string]handler.Pinger{
		"postgres": handler.PingFunc(func(ctx context.Context) error { return postgres.Ping(ctx, db) }),
	}

	// --- Error telemetry ---
	// The error handler already logs every report; sinks are external stores only.
	var sinks []reporting.Sink

	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		reports := mongo.NewErrorReportRepository(mdb)
		if err := reports.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("error_reports index not created")
		}
		sinks = append(sinks, reports)
		checks["mongodb"] = mongo.Pinger{Client: client}
	}

	if cfg.Report.SentryDSN != "" {
		sentrySink, err := reporting.NewSentrySink(sentry.ClientOptions{
			Dsn:         cfg.Report.SentryDSN,
			Environment: cfg.Env,
		})
		if err != nil {
			return err
		}
		defer sentrySink.Flush(2 * time.Second)
		sinks = append(sinks, sentrySink)
	}

	dispatcher := queue.NewDispatcher(cfg.Report.Workers, cfg.Report.QueueSize, reporting.NewFanout(sinks...), log)
	dispatcher.Start()

	// --- Login throttling ---
	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		limiter = redis.NewLoginLimiter(rdb, redis.LimiterConfig{
			MaxAttempts:  cfg.Auth.MaxLoginAttempts,
			Window:       cfg.Auth.LoginWindow,
			LockDuration: cfg.Auth.LockDuration,
		})
		checks["redis"] = redis.Pinger{Client: rdb}
	}

	// --- Core ---
	tokens, err := token.NewManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	users := postgres.NewUserRepository(db)
	authService := service.NewAuthService(users, password.NewHasher(), tokens, log,
		service.WithUnifiedLoginErrors(cfg.Auth.UnifyLoginErrors))

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Users:    service.NewUserService(users),
		Bookings: service.NewBookingService(postgres.NewBookingRepository(db), log),
		Tokens:   tokens,
		Limiter:  limiter,
		Reporter: dispatcher,
		Checks:   checks,
		Log:      log,

		TrustedProxies: cfg.TrustedProxies,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting booking api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	return shutdown(e.Shutdown, dispatcher, log)
}

func shutdown(stopHTTP func(context.Context) error, dispatcher *queue.Dispatcher, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down")
	httpErr := stopHTTP(ctx)
	if err := dispatcher.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("error reports still queued at shutdown")
	}
	return httpErr
}
