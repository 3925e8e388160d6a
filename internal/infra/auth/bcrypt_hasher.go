// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"campuseats/config"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/service"
	"campuseats/internal/errors"
)

const (
	defaultMinPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	bcryptMaxPasswordLength = 72
)

// PasswordPolicy holds the strength requirements applied before hashing.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
}

// DefaultPasswordPolicy only enforces length bounds.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength: defaultMinPasswordLength,
		MaxLength: bcryptMaxPasswordLength,
	}
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy PasswordPolicy
}

// NewBcryptHasher is the constructor used by the fx graph; cost and policy come from auth config.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	policy := DefaultPasswordPolicy()

	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.BcryptCost != 0 {
			cost = cfg.Auth.BcryptCost
		}
		if ps := cfg.Auth.PasswordStrength; ps != nil {
			policy = PasswordPolicy{
				MinLength:        ps.MinLength,
				MaxLength:        ps.MaxLength,
				RequireUppercase: ps.RequireUppercase,
				RequireLowercase: ps.RequireLowercase,
				RequireNumbers:   ps.RequireNumbers,
				RequireSpecial:   ps.RequireSpecial,
			}
		}
	}

	return NewBcryptHasherWithPolicy(cost, policy)
}

// NewBcryptHasherWithPolicy builds a hasher with an explicit cost and policy.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasherWithPolicy(cost int, policy PasswordPolicy) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if policy.MinLength <= 0 {
		policy.MinLength = 1
	}
	if policy.MaxLength <= 0 || policy.MaxLength > bcryptMaxPasswordLength {
		policy.MaxLength = bcryptMaxPasswordLength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidateStrength checks the password against the policy.
func (h *bcryptHasher) ValidateStrength(password string) error {
	p := h.policy

	if utf8.RuneCountInString(password) < p.MinLength {
		return strengthError(fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if len(password) > p.MaxLength {
		return strengthError(fmt.Sprintf("password must be at most %d bytes long", p.MaxLength))
	}
	if p.RequireUppercase && !hasUppercase(password) {
		return strengthError("password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !hasLowercase(password) {
		return strengthError("password must contain at least one lowercase letter")
	}
	if p.RequireNumbers && !hasNumbers(password) {
		return strengthError("password must contain at least one number")
	}
	if p.RequireSpecial && !hasSpecialChars(password) {
		return strengthError("password must contain at least one special character")
	}

	return nil
}

func strengthError(details string) error {
	return domainerrors.ErrPasswordStrength.WithDetails(details)
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}

func hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}

	return false
}

func hasNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func hasSpecialChars(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}

	return false
}
