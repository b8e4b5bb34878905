package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/service"
)

// KanjiHandler handles HTTP requests for the kanji catalog
type KanjiHandler struct {
	service service.KanjiService
}

// NewKanjiHandler creates a new KanjiHandler
func NewKanjiHandler(service service.KanjiService) *KanjiHandler {
	return &KanjiHandler{service: service}
}

// Index godoc
// @Summary      List kanji
// @Description  Returns every kanji, or those whose character contains the filter (case-insensitive)
// @Tags         kanjis
// @Produce      json
// @Param        character  query     string  false  "substring filter"
// @Success      200  {array}   domain.Kanji
// @Failure      500  {object}  common.APIResponse
// @Router       /kanjis [get]
func (h *KanjiHandler) Index(c *gin.Context) {
	kanjis, err := h.service.List(c.Request.Context(), c.Query("character"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch kanji", err)
		return
	}
	c.JSON(http.StatusOK, kanjis)
}

// Show godoc
// @Summary      Get a kanji by character
// @Tags         kanjis
// @Produce      json
// @Param        id   path      string  true  "the kanji character itself, e.g. 水"
// @Success      200  {object}  domain.Kanji
// @Failure      404  {object}  map[string]string
// @Router       /kanjis/{id} [get]
func (h *KanjiHandler) Show(c *gin.Context) {
	kanji, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, common.ErrKanjiNotFound) {
		common.ErrorMessage(c, http.StatusNotFound, "Kanji not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch kanji", err)
		return
	}
	c.JSON(http.StatusOK, kanji)
}
