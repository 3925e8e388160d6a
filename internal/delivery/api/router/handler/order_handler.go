package handler

import (
	"log/slog"
	"net/http"

	"campuseats/internal/delivery/api/response"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// createOrderRequest is the checkout body. Extra cart fields such as image or
// category are ignored; only the snapshot fields are kept.
type createOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	TotalAmount   *int64             `json:"totalAmount"`
	Status        string             `json:"status"`
	Items         []entity.OrderItem `json:"items"`
	// UserID is accepted for compatibility; ownership comes from the session only.
	UserID *int64 `json:"userId"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// OrderHandler serves order submission and the kitchen-facing order endpoints.
type OrderHandler struct {
	orders usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orders usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// CreateOrder submits a cart snapshot, linking it to the session user when signed in.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order input")
	}

	ctx := c.Request().Context()
	sessionUserID := deliverycontext.SessionUserID(c)
	if req.UserID != nil && (sessionUserID == nil || *sessionUserID != *req.UserID) {
		deliverycontext.LoggerFrom(ctx, h.logger).Warn("Ignoring userId from order body",
			slog.Int64("bodyUserID", *req.UserID),
		)
	}

	order, err := h.orders.Submit(ctx, &usecase.SubmitOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   req.TotalAmount,
		Status:        req.Status,
		Items:         req.Items,
	}, sessionUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid status input")
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

// PaymentQR streams the UPI payment QR code as a PNG.
func (h *OrderHandler) PaymentQR(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.orders.PaymentQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListUserOrders lists orders owned by a user id; guest orders never appear.
func (h *OrderHandler) ListUserOrders(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	orders, err := h.orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders)
}
