package repository

import (
	"github.com/deppfellow/go-registration/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	Users *UserRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s.DB.Pool),
	}
}
