package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "tscat/docs"
	"tscat/internal/handler"
)

type Handlers struct {
	Catalogs  *handler.CatalogHandler
	Messages  *handler.MessageHandler
	Translate *handler.TranslateHandler
	Sync      *handler.SyncHandler
	Settings  *handler.SettingsHandler
}

// NewRouter wires every route under /api. translateQPS bounds GET /api/translate per client.
func NewRouter(h Handlers, translateQPS float64) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	e.Use(MetricsMiddleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	h.Catalogs.RegisterRoutes(api)
	h.Messages.RegisterRoutes(api)
	h.Translate.RegisterRoutes(api, TranslateRateLimit(translateQPS))
	h.Sync.RegisterRoutes(api)
	h.Settings.RegisterRoutes(api)

	return e
}
