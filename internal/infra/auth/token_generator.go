package auth

import (
	"fmt"
	"math/rand/v2"
	"time"
	_ "time/tzdata" // pickup token dates must not depend on host zoneinfo

	"campuseats/config"
	"campuseats/internal/domain/service"
	"campuseats/internal/errors"
)

const (
	tokenSuffixMin = 100
	tokenSuffixMax = 999
)

// pickupTokenGenerator builds YYYYMMDD-NNN tokens. Uniqueness is not enforced.
type pickupTokenGenerator struct {
	loc    *time.Location
	suffix func() int
}

// NewPickupTokenGenerator creates a token generator in the configured location.
func NewPickupTokenGenerator(cfg *config.Config) (service.TokenGenerator, error) {
	loc := time.Local
	if name := cfg.Orders.TokenLocation; name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return nil, errors.Wrapf(err, "load token location %q", name)
		}
		loc = l
	}

	return &pickupTokenGenerator{
		loc: loc,
		suffix: func() int {
			return tokenSuffixMin + rand.IntN(tokenSuffixMax-tokenSuffixMin+1)
		},
	}, nil
}

// Generate formats now's date in the configured location with a random 3-digit suffix.
func (g *pickupTokenGenerator) Generate(now time.Time) string {
	return fmt.Sprintf("%s-%03d", now.In(g.loc).Format("20060102"), g.suffix())
}
