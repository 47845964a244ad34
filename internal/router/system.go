package router

import (
	"github.com/deppfellow/go-profile/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the routes that are not part of the API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
