package service

import "time"

// TokenGenerator produces human-readable pickup tokens.
type TokenGenerator interface {
	// Generate returns a token for an order created at now.
	Generate(now time.Time) string
}
