package repository

import (
	"github.com/deppfellow/go-profile/internal/server"
)

// Repositories is a container for all repository instances.
//
// Services receive this container and pick the repositories they need.
type Repositories struct {
	Users      *UserRepository
	Uniqueness *UniquenessRepository
}

// NewRepositories constructs the repository container on top of the
// server's PostgreSQL pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(s.DB.Pool),
		Uniqueness: NewUniquenessRepository(s.DB.Pool),
	}
}
