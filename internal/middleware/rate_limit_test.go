package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-profile/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_Limit(t *testing.T) {
	s := &server.Server{}
	rl := NewRateLimitMiddleware(s)

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.PATCH("/profile", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, rl.Limit("profile.update", 1))

	var codes []int
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/profile", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
