package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/middleware"
	"github.com/kanjidojo/kanji-backend/internal/policy"
	"github.com/kanjidojo/kanji-backend/internal/service"
	"github.com/kanjidojo/kanji-backend/pkg/ginutil"
)

var patchValidator = newPatchValidator()

// newPatchValidator reports fields by their JSON names
func newPatchValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var validationMessages = map[string]string{
	"datetime": "is not a valid RFC 3339 timestamp",
}

// toValidationError converts validator failures into the 422 field list
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]common.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		fields = append(fields, common.FieldError{Field: fe.Field(), Message: msg})
	}
	return &common.ValidationError{Fields: fields}
}

// UserKanjiHandler handles HTTP requests for study records
type UserKanjiHandler struct {
	service service.UserKanjiService
}

// NewUserKanjiHandler creates a new UserKanjiHandler
func NewUserKanjiHandler(service service.UserKanjiService) *UserKanjiHandler {
	return &UserKanjiHandler{service: service}
}

// UserKanjiUpdateRequest documents the accepted body. The same fields may
// also be nested under a "user_kanji" key.
type UserKanjiUpdateRequest struct {
	LastReviewedAt *string `json:"last_reviewed_at" example:"2025-07-27T19:45:49Z"`
}

type lastReviewedAtInput struct {
	LastReviewedAt string `json:"last_reviewed_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
}

// Show godoc
// @Summary      Get a study record
// @Tags         user_kanjis
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "UserKanji ID"
// @Success      200  {object}  domain.UserKanji
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user_kanjis/{id} [get]
func (h *UserKanjiHandler) Show(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorMessage(c, http.StatusNotFound, "UserKanji not found")
		return
	}

	uk, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, policy.ActionShow, err)
		return
	}
	c.JSON(http.StatusOK, uk)
}

// Update godoc
// @Summary      Update last_reviewed_at
// @Description  null or "" clears the timestamp; omitting the key leaves it unchanged
// @Tags         user_kanjis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "UserKanji ID"
// @Param        body  body      UserKanjiUpdateRequest  true  "patch"
// @Success      200  {object}  domain.UserKanji
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string][]common.FieldError
// @Router       /user_kanjis/{id} [patch]
// @Router       /user_kanjis/{id} [put]
func (h *UserKanjiHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorMessage(c, http.StatusNotFound, "UserKanji not found")
		return
	}

	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	patch, perr := parseUserKanjiPatch(c.Request.Body)
	if perr != nil {
		// missing rows and foreign records are reported ahead of body errors
		if _, err := h.service.Get(ctx, user, id); err != nil {
			h.fail(c, policy.ActionUpdate, err)
			return
		}
		h.fail(c, policy.ActionUpdate, perr)
		return
	}

	uk, err := h.service.Update(ctx, user, id, patch)
	if err != nil {
		h.fail(c, policy.ActionUpdate, err)
		return
	}
	c.JSON(http.StatusOK, uk)
}

func (h *UserKanjiHandler) fail(c *gin.Context, action policy.Action, err error) {
	var verr *common.ValidationError
	switch {
	case errors.Is(err, common.ErrUserKanjiNotFound):
		common.ErrorMessage(c, http.StatusNotFound, "UserKanji not found")
	case errors.Is(err, common.ErrForbidden):
		middleware.RecordDenied(string(action))
		common.ErrorMessage(c, http.StatusForbidden, common.ForbiddenMessage)
	case errors.As(err, &verr):
		common.ValidationErrors(c, verr.Fields)
	case errors.Is(err, errMalformedBody):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
	default:
		_ = c.Error(err)
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to process study record", err)
	}
}

var errMalformedBody = errors.New("malformed JSON body")

// parseUserKanjiPatch reads {"last_reviewed_at": ...} or the same object
// wrapped in {"user_kanji": {...}}. Unknown keys are ignored.
func parseUserKanjiPatch(body io.Reader) (domain.UserKanjiPatch, error) {
	var patch domain.UserKanjiPatch

	raw, err := io.ReadAll(body)
	if err != nil {
		return patch, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return patch, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return patch, errMalformedBody
	}
	if nested, ok := fields["user_kanji"]; ok {
		fields = nil
		if err := json.Unmarshal(nested, &fields); err != nil || fields == nil {
			return patch, common.NewValidationError("user_kanji", "must be an object")
		}
	}

	value, ok := fields["last_reviewed_at"]
	if !ok {
		return patch, nil
	}
	patch.Set = true

	if string(bytes.TrimSpace(value)) == "null" {
		return patch, nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return patch, common.NewValidationError("last_reviewed_at", "must be a string in RFC 3339 format")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return patch, nil
	}

	if err := patchValidator.Struct(lastReviewedAtInput{LastReviewedAt: s}); err != nil {
		return patch, toValidationError(err)
	}
	// the datetime tag already accepted s with this layout
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return patch, fmt.Errorf("parse last_reviewed_at: %w", err)
	}
	patch.LastReviewedAt = &t
	return patch, nil
}
