package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/repository"
	"github.com/kanjidojo/kanji-backend/internal/service"
	"github.com/kanjidojo/kanji-backend/internal/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
}

// newFixture wires the catalog and study handlers over a fresh database.
// The X-Test-User header stands in for JWTAuth.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	kanjiHandler := NewKanjiHandler(service.NewKanjiService(repository.NewKanjiRepository(db)))
	ukHandler := NewUserKanjiHandler(service.NewUserKanjiService(repository.NewUserKanjiRepository(db)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userID", id)
		}
		c.Next()
	})
	r.GET("/kanjis", kanjiHandler.Index)
	r.GET("/kanjis/:id", kanjiHandler.Show)
	r.GET("/user_kanjis/:id", ukHandler.Show)
	r.PATCH("/user_kanjis/:id", ukHandler.Update)
	r.PUT("/user_kanjis/:id", ukHandler.Update)

	return &fixture{db: db, router: r}
}

func (f *fixture) do(method, path, body string, user *domain.User) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != nil {
		req.Header.Set("X-Test-User", strconv.FormatUint(user.ID, 10))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func ukPath(uk *domain.UserKanji) string {
	return "/user_kanjis/" + strconv.FormatUint(uk.ID, 10)
}
