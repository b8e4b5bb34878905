// Package server assembles the gin engine: global middleware, system
// endpoints and the /api/v1 routes.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/config"
	"github.com/kanjidojo/kanji-backend/internal/handler"
	"github.com/kanjidojo/kanji-backend/internal/middleware"
	"github.com/kanjidojo/kanji-backend/internal/repository"
	"github.com/kanjidojo/kanji-backend/internal/routes"
	"github.com/kanjidojo/kanji-backend/internal/service"
	"github.com/kanjidojo/kanji-backend/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New builds the HTTP handler. redisClient may be nil.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, jwtManager *jwt.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORS.AllowOrigins)))

	router.Use(middleware.SecurityHeaders())
	// catalog filters are free text matched through bound parameters
	router.Use(middleware.InputSanitizer("/api/v1/kanjis"))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	system := handler.NewSystemHandler(db, cfg.App.Name)
	router.GET("/", system.Root)
	router.GET("/health", system.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	kanjiRepo := repository.NewKanjiRepository(db)
	userKanjiRepo := repository.NewUserKanjiRepository(db)
	userRepo := repository.NewUserRepository(db)

	routes.Setup(router, routes.Handlers{
		Kanji:     handler.NewKanjiHandler(service.NewKanjiService(kanjiRepo)),
		UserKanji: handler.NewUserKanjiHandler(service.NewUserKanjiService(userKanjiRepo)),
		Auth:      handler.NewAuthHandler(service.NewAuthService(userRepo, jwtManager)),
	}, jwtManager, redisClient, cfg)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func corsConfig(allowOrigins string) cors.Config {
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}

	return cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:           86400,
	}
}

// splitAndTrim splits a string by delimiter and drops empty parts
func splitAndTrim(s, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
