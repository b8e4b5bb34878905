package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/database"
	"github.com/kanjidojo/kanji-backend/internal/middleware"
	"gorm.io/gorm"
)

// SystemHandler serves the landing page and health checks
type SystemHandler struct {
	db      *gorm.DB
	appName string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, appName string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName}
}

// Root godoc
// @Summary      Landing page
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": h.appName,
		"docs": "/swagger/index.html",
		"api":  "/api/v1",
	})
}

// Health godoc
// @Summary      Health check
// @Description  503 when the database is unreachable
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  common.APIResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	if sqlDB, err := h.db.DB(); err == nil {
		middleware.SetDBConnectionsOpen(sqlDB.Stats().OpenConnections)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}
