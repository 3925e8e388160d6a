// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"campuseats/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by register and login: the user plus the session bound to them.
type AuthOutput struct {
	User    *entity.User
	Session *IssuedSession
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates the account and signs it in.
	Register(ctx context.Context, input *RegisterUserInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh session. Unknown email and wrong
	// password fail identically.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Logout destroys the session. Unknown sessions are ignored.
	Logout(ctx context.Context, sessionID string) error

	// CurrentUser resolves the signed-in user; a session pointing at a vanished user is anonymous.
	CurrentUser(ctx context.Context, userID int64) (*entity.User, error)
}
