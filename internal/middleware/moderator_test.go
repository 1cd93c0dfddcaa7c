package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmic_quiz_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Moderation.Key = key

	router := gin.New()
	router.GET("/guarded", ModeratorGuard(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func request(router *gin.Engine, header, query string) *httptest.ResponseRecorder {
	path := "/guarded"
	if query != "" {
		path += "?moderatorKey=" + query
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("X-Moderator-Key", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestModeratorGuardAcceptsHeaderKey(t *testing.T) {
	router := newGuardedRouter("orbital-secret")
	rec := request(router, "orbital-secret", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestModeratorGuardAcceptsQueryKey(t *testing.T) {
	router := newGuardedRouter("orbital-secret")
	rec := request(router, "", "orbital-secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestModeratorGuardRejectsWrongKey(t *testing.T) {
	router := newGuardedRouter("orbital-secret")
	for _, key := range []string{"", "wrong", "orbital-secret "} {
		rec := request(router, key, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}
}

func TestModeratorGuardRejectsWhenKeyUnconfigured(t *testing.T) {
	router := newGuardedRouter("")
	rec := request(router, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
