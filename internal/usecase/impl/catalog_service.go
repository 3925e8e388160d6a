package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	menuRepo repository.MenuRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	MenuRepo repository.MenuRepository
	Logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		menuRepo: params.MenuRepo,
		logger:   params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *catalogService) ListAll(ctx context.Context) ([]*entity.MenuItem, error) {
	items, err := srv.menuRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	return items, nil
}

// ListByCategory matches the tag exactly, so "Lunch" finds nothing.
func (srv *catalogService) ListByCategory(ctx context.Context, category string) ([]*entity.MenuItem, error) {
	tag := entity.Category(strings.TrimSpace(category))
	if !tag.IsValid() {
		srv.log(ctx).Debug("Unknown menu category", slog.String("category", category))

		return []*entity.MenuItem{}, nil
	}

	items, err := srv.menuRepo.ListByCategory(ctx, tag)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list menu items in %s", tag)
	}

	return items, nil
}

func (srv *catalogService) GetByID(ctx context.Context, id int64) (*entity.MenuItem, error) {
	if id <= 0 {
		return nil, domainerrors.ErrInvalidID
	}

	item, err := srv.menuRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrMenuItemNotFound) {
		return nil, domainerrors.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find menu item")
	}

	return item, nil
}

func (srv *catalogService) Categories() []entity.Category {
	return entity.Categories()
}
