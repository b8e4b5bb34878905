package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/config"
	"github.com/kanjidojo/kanji-backend/internal/database"
	"github.com/kanjidojo/kanji-backend/internal/migration"
	"github.com/kanjidojo/kanji-backend/internal/server"
	"github.com/kanjidojo/kanji-backend/pkg/jwt"
	pkglogger "github.com/kanjidojo/kanji-backend/pkg/logger"
	pkgredis "github.com/kanjidojo/kanji-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// @title           Kanji Backend API
// @version         1.0
// @description     Kanji catalog and per-user study progress
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// devSecret signs tokens when no secret is configured in a development environment
const devSecret = "kanji-backend-development-secret"

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := config.Path(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.App.Env == "" {
		cfg.App.Env = env
	}
	config.LogResolved(cfg)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("failed to connect to database")
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)

	if err := migration.Up(ctx, db); err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("migration failed")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without cache and rate limiting)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
			defer redisClient.Close()
		}
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		pkglogger.Warn("jwt.secret is empty, using the development secret")
		secret = devSecret
	}
	jwtManager := jwt.NewManager(secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.New(cfg, db, redisClient, jwtManager),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkglogger.GetLogger().Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("Graceful shutdown failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
