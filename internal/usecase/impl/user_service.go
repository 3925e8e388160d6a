// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	sessions usecase.SessionUsecase
	metrics  service.MetricsRecorder
	validate *validator.Validate
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Sessions usecase.SessionUsecase
	Metrics  service.MetricsRecorder
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		sessions: params.Sessions,
		metrics:  params.Metrics,
		validate: validator.New(),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// Register creates the account and binds a fresh session to it.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	name := strings.TrimSpace(input.Name)
	// Stored as typed; the repositories compare emails case-insensitively.
	email := strings.TrimSpace(input.Email)

	if name == "" {
		return nil, domainerrors.NewFieldError("name", "Name is required")
	}
	if err := srv.validate.Var(email, "required,email"); err != nil {
		return nil, domainerrors.NewFieldError("email", "A valid email is required")
	}
	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	session, err := srv.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{User: user, Session: session}, nil
}

// Login verifies the credentials and issues a new session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.metrics.Login(service.LoginResultFailure)
		srv.log(ctx).Info("Login failed: unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.metrics.Login(service.LoginResultFailure)
		srv.log(ctx).Info("Login failed: password mismatch", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	session, err := srv.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	srv.metrics.Login(service.LoginResultSuccess)
	srv.log(ctx).Debug("Login succeeded", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{User: user, Session: session}, nil
}

// Logout destroys the session; unknown sessions are not an error.
func (srv *userService) Logout(ctx context.Context, sessionID string) error {
	if err := srv.sessions.Destroy(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to logout")
	}

	return nil
}

// CurrentUser returns the user bound to the session.
func (srv *userService) CurrentUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Session bound to missing user", slog.Int64("userID", userID))

		return nil, domainerrors.ErrAuthenticationRequired
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find current user")
	}

	return user, nil
}
