package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/go-profile/internal/errs"
	"github.com/deppfellow/go-profile/internal/middleware"
	"github.com/deppfellow/go-profile/internal/model"
	"github.com/deppfellow/go-profile/internal/request"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/labstack/echo/v4"
)

type profileService interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, req *request.ProfileUpdateRequest) (*model.User, error)
}

// ProfileHandler serves the profile settings of the authenticated user.
type ProfileHandler struct {
	Handler
	profiles profileService
}

func NewProfileHandler(s *server.Server, v *validation.Validator, profiles profileService) *ProfileHandler {
	return &ProfileHandler{
		Handler:  NewHandler(s, v),
		profiles: profiles,
	}
}

// GetProfile returns the current user's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return errs.NewUnauthorizedError("Unauthorized", false)
	}

	user, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile stores a validated name and email for the current user.
// Validation already ran against the user's own rules when this is called.
func (h *ProfileHandler) UpdateProfile(c echo.Context, req *request.ProfileUpdateRequest) (*model.User, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.profiles.Update(c.Request().Context(), userID, req)
}
