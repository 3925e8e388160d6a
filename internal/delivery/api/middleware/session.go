package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware resolves the session cookie and gates protected routes.
type SessionMiddleware struct {
	sessions   usecase.SessionUsecase
	cookieName string
	secure     bool
	logger     *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.Session.Secure,
		logger:     logger,
	}
}

// Load resolves the cookie for every request. Anonymous callers pass through.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		session, err := m.sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			return errors.Wrap(err, "resolve session")
		}
		if session != nil {
			deliverycontext.SetSession(c, session)
		}

		return next(c)
	}
}

// Require rejects anonymous callers. It must run after Load.
func (m *SessionMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetSession(c); !ok {
			return domainerrors.ErrAuthenticationRequired
		}

		return next(c)
	}
}

// SetCookie delivers a freshly issued session to the client.
func (m *SessionMiddleware) SetCookie(c echo.Context, session *usecase.IssuedSession) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    session.CookieValue,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie instructs the client to discard the session cookie.
func (m *SessionMiddleware) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
