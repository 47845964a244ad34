// Package router builds the Echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"net/http"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/deppfellow/go-profile/internal/handler"
	"github.com/deppfellow/go-profile/internal/middleware"
	"github.com/deppfellow/go-profile/internal/request"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes. Order matters: the request id must
// exist before tracing and the context logger, and the request logger needs
// the context logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerProfileRoutes(v1, s, h, mw)

	return router
}

// registerProfileRoutes mounts the authenticated profile settings routes.
// The context logger is rebuilt after auth so it carries the user id.
func registerProfileRoutes(g *echo.Group, s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) {
	settings := g.Group("/settings",
		mw.Auth.RequireAuth,
		mw.ContextEnhancer.EnhanceContext(),
	)

	rateLimit := s.Config.Server.RateLimit
	if rateLimit <= 0 {
		rateLimit = config.DefaultRateLimit
	}

	settings.GET("/profile", h.Profile.GetProfile)
	settings.PATCH("/profile",
		handler.Handle(h.Profile.Handler, h.Profile.UpdateProfile, http.StatusOK, request.NewProfileUpdateRequest),
		mw.RateLimit.Limit("profile.update", rateLimit),
	)
}
