// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is an account that can sign in and own orders.
type User struct {
	ID           int64     `json:"id"`        // Sequential identifier assigned by the store.
	Name         string    `json:"name"`      // Display name.
	Email        string    `json:"email"`     // Login identifier, unique case-insensitively.
	PasswordHash string    `json:"-"`         // Salted one-way hash, never serialized.
	CreatedAt    time.Time `json:"createdAt"` // Timestamp of registration.
}

// NormalizeEmail returns the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
