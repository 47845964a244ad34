package middleware

import (
	"context"

	"github.com/deppfellow/go-profile/internal/logger"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UserRoleKey store the authenticated identity in Echo context.
	// RequireAuth sets them.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// PermissionsKey stores the active organization permissions.
	PermissionsKey = "permissions"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request, trace and
// user fields, and stores it in both the Echo and the Go request context.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. It must run after RequestID,
// and after RequireAuth for user fields to be present.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template, e.g. "/api/v1/settings/profile"
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			if userRole := GetUserRole(c); userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			// Also reachable by code that only sees context.Context.
			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user id, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// CurrentUserID returns the authenticated user id, or nil for anonymous requests.
func CurrentUserID(c echo.Context) *string {
	userID := GetUserID(c)
	if userID == "" {
		return nil
	}
	return &userID
}

// GetUserRole returns the active organization role, or "".
func GetUserRole(c echo.Context) string {
	if userRole, ok := c.Get(UserRoleKey).(string); ok {
		return userRole
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context.
// If EnhanceContext didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
