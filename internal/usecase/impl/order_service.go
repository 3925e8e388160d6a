package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"campuseats/config"
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

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo    repository.OrderRepository
	menuRepo     repository.MenuRepository
	tokens       service.TokenGenerator
	qrService    service.PaymentQRService
	publisher    service.EventPublisher
	metrics      service.MetricsRecorder
	verifyPrices bool
	validate     *validator.Validate
	now          func() time.Time
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	MenuRepo  repository.MenuRepository
	Tokens    service.TokenGenerator
	QRService service.PaymentQRService
	Publisher service.EventPublisher
	Metrics   service.MetricsRecorder
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:    params.OrderRepo,
		menuRepo:     params.MenuRepo,
		tokens:       params.Tokens,
		qrService:    params.QRService,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		verifyPrices: params.Config.Orders.VerifyCatalogPrices,
		validate:     validator.New(),
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// Submit turns a cart snapshot and contact details into a persisted order.
func (srv *orderService) Submit(ctx context.Context, input *usecase.SubmitOrderInput, sessionUserID *int64) (*entity.Order, error) {
	if input == nil || len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	name := strings.TrimSpace(input.CustomerName)
	email := strings.TrimSpace(input.CustomerEmail)
	phone := strings.TrimSpace(input.CustomerPhone)
	if err := srv.validateContact(name, email, phone); err != nil {
		return nil, err
	}

	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	total := entity.SumItems(input.Items)
	if input.TotalAmount != nil && *input.TotalAmount != total {
		return nil, domainerrors.NewFieldError("totalAmount",
			fmt.Sprintf("Total amount %d does not match the items total %d", *input.TotalAmount, total))
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = entity.DefaultOrderStatus
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	if srv.verifyPrices {
		if err := srv.verifyCatalogPrices(ctx, input.Items); err != nil {
			return nil, err
		}
	}

	now := srv.now()
	order := &entity.Order{
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		TotalAmount:   total,
		Status:        status,
		Items:         append([]entity.OrderItem(nil), input.Items...),
		TokenNumber:   srv.tokens.Generate(now),
		CreatedAt:     now,
	}
	if sessionUserID != nil {
		uid := *sessionUserID
		order.UserID = &uid
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		srv.log(ctx).Error("Failed to create order", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.metrics.OrderSubmitted()
	srv.log(ctx).Info("Order submitted",
		slog.Int64("orderID", order.ID),
		slog.String("token", order.TokenNumber),
		slog.Int64("total", order.TotalAmount),
		slog.Bool("guest", order.IsGuest()),
	)
	srv.publish(ctx, service.OrderEventCreated, order)

	return order, nil
}

func (srv *orderService) validateContact(name, email, phone string) error {
	switch n := utf8.RuneCountInString(name); {
	case n < entity.MinCustomerNameLength:
		return domainerrors.NewFieldError("customerName",
			fmt.Sprintf("Name must be at least %d characters", entity.MinCustomerNameLength))
	case n > entity.MaxCustomerNameLength:
		return domainerrors.NewFieldError("customerName",
			fmt.Sprintf("Name must be at most %d characters", entity.MaxCustomerNameLength))
	}
	if !entity.IsValidPhone(phone) {
		return domainerrors.NewFieldError("customerPhone", "Phone must be 10 to 15 digits")
	}
	if err := srv.validate.Var(email, fmt.Sprintf("required,max=%d,email", entity.MaxCustomerEmailLength)); err != nil {
		return domainerrors.NewFieldError("customerEmail",
			fmt.Sprintf("A valid email of at most %d characters is required", entity.MaxCustomerEmailLength))
	}

	return nil
}

func validateItems(items []entity.OrderItem) error {
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case item.ID <= 0:
			return domainerrors.NewFieldError(field+".id", "Item id must be positive")
		case strings.TrimSpace(item.Name) == "":
			return domainerrors.NewFieldError(field+".name", "Item name is required")
		case item.Price < 0:
			return domainerrors.NewFieldError(field+".price", "Item price must not be negative")
		case item.Price > entity.MaxItemPrice:
			return domainerrors.NewFieldError(field+".price",
				fmt.Sprintf("Item price must be at most %d", entity.MaxItemPrice))
		case item.Quantity < 1:
			return domainerrors.NewFieldError(field+".quantity", "Item quantity must be at least 1")
		case item.Quantity > entity.MaxItemQuantity:
			return domainerrors.NewFieldError(field+".quantity",
				fmt.Sprintf("Item quantity must be at most %d", entity.MaxItemQuantity))
		}
	}

	return nil
}

func validateStatus(status string) error {
	if status == "" {
		return domainerrors.NewFieldError("status", "Status is required")
	}
	if utf8.RuneCountInString(status) > entity.MaxOrderStatusLength {
		return domainerrors.NewFieldError("status",
			fmt.Sprintf("Status must be at most %d characters", entity.MaxOrderStatusLength))
	}

	return nil
}

// verifyCatalogPrices re-prices each line against the catalog.
func (srv *orderService) verifyCatalogPrices(ctx context.Context, items []entity.OrderItem) error {
	for _, item := range items {
		menuItem, err := srv.menuRepo.FindByID(ctx, item.ID)
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return domainerrors.ErrPriceMismatch.WithDetails(fmt.Sprintf("item %d is not on the menu", item.ID))
		}
		if err != nil {
			return errors.Wrap(err, "failed to load menu item for price check")
		}

		if menuItem.Price != item.Price {
			srv.log(ctx).Warn("Cart price differs from catalog",
				slog.Int64("itemID", item.ID),
				slog.Int64("cartPrice", item.Price),
				slog.Int64("catalogPrice", menuItem.Price),
			)

			return domainerrors.ErrPriceMismatch.WithDetails(
				fmt.Sprintf("item %d costs %d, not %d", item.ID, menuItem.Price, item.Price))
		}
	}

	return nil
}

func (srv *orderService) Get(ctx context.Context, id int64) (*entity.Order, error) {
	if id <= 0 {
		return nil, domainerrors.ErrInvalidID
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// UpdateStatus replaces the status of an existing order.
func (srv *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	if id <= 0 {
		return nil, domainerrors.ErrInvalidID
	}

	status = strings.TrimSpace(status)
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	order, err := srv.orderRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.metrics.OrderStatusUpdated(status)
	srv.log(ctx).Info("Order status updated", slog.Int64("orderID", id), slog.String("status", status))
	srv.publish(ctx, service.OrderEventStatusChanged, order)

	return order, nil
}

func (srv *orderService) ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	if userID <= 0 {
		return nil, domainerrors.ErrInvalidID
	}

	orders, err := srv.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return orders, nil
}

func (srv *orderService) ListAll(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// PaymentQR renders the UPI payment QR for the order total.
func (srv *orderService) PaymentQR(ctx context.Context, id int64) ([]byte, error) {
	order, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePaymentQR(order)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate payment QR")
	}

	return png, nil
}

// publish sends the event; failures are logged and counted but never returned.
func (srv *orderService) publish(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:   deliverycontext.RequestIDFrom(ctx),
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TokenNumber: order.TokenNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		OccurredAt:  srv.now(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.metrics.EventPublishFailed()
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("type", eventType),
			slog.Int64("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}
