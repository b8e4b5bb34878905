package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/config"
	"github.com/kanjidojo/kanji-backend/internal/handler"
	"github.com/kanjidojo/kanji-backend/internal/middleware"
	"github.com/kanjidojo/kanji-backend/pkg/jwt"
	"github.com/redis/go-redis/v9"
)

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	Kanji     *handler.KanjiHandler
	UserKanji *handler.UserKanjiHandler
	Auth      *handler.AuthHandler
}

// Setup configures all API routes. redisClient may be nil, which disables
// response caching and rate limiting.
func Setup(
	router *gin.Engine,
	h Handlers,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	rateLimit := middleware.DefaultRateLimitConfig()
	rateLimit.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
	limiter := middleware.RateLimit(redisClient, rateLimit)

	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth", limiter)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.GET("/me", middleware.JWTAuth(jwtManager), h.Auth.Me)

	// Kanji catalog (public, read-only)
	kanjis := api.Group("/kanjis", limiter)
	if cfg.Cache.Enabled {
		cacheCfg := middleware.DefaultCacheConfig()
		cacheCfg.TTL = time.Duration(cfg.Cache.TTL) * time.Second
		kanjis.Use(middleware.Cache(redisClient, cacheCfg))
	}
	kanjis.GET("", h.Kanji.Index)
	kanjis.GET("/:id", h.Kanji.Show)

	// Study records (owner only); limited per user after authentication
	userKanjis := api.Group("/user_kanjis", middleware.JWTAuth(jwtManager), limiter)
	userKanjis.GET("/:id", h.UserKanji.Show)
	userKanjis.PATCH("/:id", h.UserKanji.Update)
	userKanjis.PUT("/:id", h.UserKanji.Update)
}
