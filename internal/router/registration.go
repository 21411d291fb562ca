package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-registration/internal/handler"
	"github.com/deppfellow/go-registration/internal/middleware"
)

func registerRegistrationRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	g.POST(
		"/registrations",
		handler.Handle(h.Registration.Handler, h.Registration.Register, http.StatusCreated, handler.NewRegisterUserRequest),
		m.RateLimit.Limit(),
	)
}
