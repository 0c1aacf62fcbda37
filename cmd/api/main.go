package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volunteerhub/volunteerhub-api/internal/api"
	"github.com/volunteerhub/volunteerhub-api/internal/core/service"
	"github.com/volunteerhub/volunteerhub-api/internal/infrastructure/config"
	mongodb "github.com/volunteerhub/volunteerhub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/volunteerhub/volunteerhub-api/internal/infrastructure/db/redis"
	"github.com/volunteerhub/volunteerhub-api/internal/infrastructure/queue"
	"github.com/volunteerhub/volunteerhub-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	seeder := service.NewSeeder(userRepo, roleRepo, log)
	seeder.AdminEmail = cfg.Seed.AdminEmail
	seeder.AdminPassword = cfg.Seed.AdminPassword
	seeder.ManagerEmail = cfg.Seed.ManagerEmail
	seeder.ManagerPassword = cfg.Seed.ManagerPassword
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	notificationService := service.NewNotificationService(mongodb.NewNotificationRepository(db), log)
	notifier := queue.NewNotifier(cfg.NotifyWorkers, notificationService, log)
	notifier.Start(ctx)

	e := api.NewRouter(db, rdb, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		JWTIssuer: cfg.JWTIssuer,
		JWTTTL:    cfg.JWTTTL,
		Notifier:  notifier,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewEventRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewRegistrationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewChannelRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewNotificationRepository(db).EnsureIndexes(ctx)
}
