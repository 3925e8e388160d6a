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
	"gorm.io/gorm/clause"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order; the id comes from the table's identity sequence, so it is never reused.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	orderM := model.FromOrderDomain(order)
	orderM.ID = 0
	orderM.CreatedAt = orderM.CreatedAt.UTC()

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isInputConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID

	return nil
}

// FindByID retrieves a single order.
func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrOrderNotFound)
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return model.ToOrderDomain(&orderM), nil
}

// UpdateStatus sets the status in a single UPDATE ... RETURNING statement.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	var rows []model.OrderModel
	result := repo.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 || len(rows) == 0 {
		return nil, errors.WithStack(repository.ErrOrderNotFound)
	}

	return model.ToOrderDomain(&rows[0]), nil
}

// ListByUserID returns the user's orders; guest rows have a NULL user_id and never match.
func (repo *orderRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Order, error) {
	return repo.list(repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

// List returns every order.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	return repo.list(repo.db.WithContext(ctx))
}

func (repo *orderRepository) list(tx *gorm.DB) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := tx.Order("id ASC").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, model.ToOrderDomain(&orderMs[i]))
	}

	return orders, nil
}
