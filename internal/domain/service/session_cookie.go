package service

import "time"

// SessionCookieSigner turns an opaque session ID into a tamper-evident cookie value and back.
type SessionCookieSigner interface {
	// Sign returns the cookie value carrying the session ID until expiresAt.
	Sign(sessionID string, expiresAt time.Time) (string, error)

	// Verify returns the session ID from a cookie value, or an error if it was altered or has expired.
	Verify(cookieValue string) (string, error)
}
