package context

import (
	"campuseats/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetSession stores the resolved session for downstream handlers.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(keySession), session)
}

// GetSession returns the session resolved for this request, if any.
func GetSession(c echo.Context) (*entity.Session, bool) {
	session, ok := c.Get(string(keySession)).(*entity.Session)

	return session, ok && session != nil
}

// SessionUserID returns the authenticated user id, or nil for anonymous requests.
func SessionUserID(c echo.Context) *int64 {
	session, ok := GetSession(c)
	if !ok {
		return nil
	}

	uid := session.UserID

	return &uid
}
