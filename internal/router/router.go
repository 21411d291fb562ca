// Package router builds the Echo instance: global middleware, system
// routes and the versioned API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-registration/internal/handler"
	"github.com/deppfellow/go-registration/internal/middleware"
	"github.com/deppfellow/go-registration/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerRegistrationRoutes(v1, h, middlewares)

	return router
}
