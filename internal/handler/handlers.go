package handler

import (
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/deppfellow/go-profile/internal/service"
	"github.com/deppfellow/go-profile/internal/validation"
)

// Handlers groups every HTTP handler so the router takes a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Profile *ProfileHandler
}

func NewHandlers(s *server.Server, services *service.Services, v *validation.Validator) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Profile: NewProfileHandler(s, v, services.Profile),
	}
}
