package middleware

import (
	"math"
	"time"

	"campuseats/config"
	domainerrors "campuseats/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const loginLimiterExpiry = 10 * time.Minute

// NewLoginRateLimiter throttles login attempts per client IP. A non-positive
// http.loginRateLimit disables it.
func NewLoginRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	limit := cfg.HTTP.LoginRateLimit
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     int(math.Ceil(limit)),
		ExpiresIn: loginLimiterExpiry,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(echo.Context, error) error {
			return domainerrors.ErrTooManyRequests
		},
		DenyHandler: func(echo.Context, string, error) error {
			return domainerrors.ErrTooManyRequests
		},
	})
}
