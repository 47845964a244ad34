// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/go-profile/internal/lib/job"
	"github.com/deppfellow/go-profile/internal/repository"
	"github.com/deppfellow/go-profile/internal/server"
)

type Services struct {
	Auth    *AuthService
	Job     *job.JobService
	Profile *ProfileService
}

func NewService(s *server.Server, repos *repository.Repositories) *Services {
	authService := NewAuthService(s)

	var enqueuer TaskEnqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Job:     s.Job,
		Auth:    authService,
		Profile: NewProfileService(repos.Users, NewClerkIdentityProvider(), enqueuer, s.Logger),
	}
}
