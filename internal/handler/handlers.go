package handler

import (
	"github.com/deppfellow/go-registration/internal/server"
	"github.com/deppfellow/go-registration/internal/service"
)

type Handlers struct {
	Health       *HealthHandler
	Registration *RegistrationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Registration: NewRegistrationHandler(s, services.Registration),
	}
}
