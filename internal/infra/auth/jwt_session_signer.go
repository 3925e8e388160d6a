package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campuseats/config"
	"campuseats/internal/domain/service"
	"campuseats/internal/errors"
)

const sessionTokenType = "session"

// sessionClaims wraps the opaque session ID.
type sessionClaims struct {
	SessionID string `json:"sid"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// jwtSessionSigner signs session cookies as HS256 JWTs so a tampered cookie is rejected
// before the session store is consulted.
type jwtSessionSigner struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTSessionSigner is the constructor for jwtSessionSigner.
func NewJWTSessionSigner(cfg *config.Config) (service.SessionCookieSigner, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtSessionSigner{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.Env.ServiceName,
		now:    time.Now,
	}, nil
}

// Sign returns a compact JWT carrying the session ID.
func (s *jwtSessionSigner) Sign(sessionID string, expiresAt time.Time) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: sessionID,
		Type:      sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}

	return signed, nil
}

// Verify parses the cookie value and returns the session ID it carries.
func (s *jwtSessionSigner) Verify(cookieValue string) (string, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(cookieValue, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", errors.Wrap(err, "verify session token")
	}

	if claims.Type != sessionTokenType || claims.SessionID == "" {
		return "", errors.New("session token missing sid claim")
	}

	return claims.SessionID, nil
}
