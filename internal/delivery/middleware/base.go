package middleware

import (
	"log/slog"

	"campuseats/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewBaseEcho returns an echo instance with the middleware every process
// shares. Order matters: panics are recovered first, and the request id is
// bound before anything logs.
func NewBaseEcho(cfg *config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	return e
}
