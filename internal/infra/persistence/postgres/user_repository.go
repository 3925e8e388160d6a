// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db:  db,
		now: time.Now,
	}
}

// Create inserts the user; the unique index on lower(email) turns duplicates into ErrEmailTaken.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	user.CreatedAt = repo.now().UTC()
	userM := model.FromUserDomain(user)
	userM.ID = 0

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrEmailTaken)
		}
		if isInputConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID

	return nil
}

// FindByID retrieves a single user by their ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return model.ToUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by email, ignoring case.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", entity.NormalizeEmail(email)).
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return model.ToUserDomain(&userM), nil
}
