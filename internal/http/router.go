package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "traductor/backend/docs"
	"traductor/backend/internal/handler"
)

func NewRouter(
	translateHandler *handler.TranslateHandler,
	healthHandler *handler.HealthHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = NewTemplateRenderer()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	healthHandler.RegisterRoutes(e)
	translateHandler.RegisterPageRoutes(e)

	api := e.Group("/api")
	translateHandler.RegisterRoutes(api)

	return e
}
