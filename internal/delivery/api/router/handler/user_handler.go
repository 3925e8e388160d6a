// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"campuseats/internal/delivery/api/middleware"
	"campuseats/internal/delivery/api/response"
	deliverycontext "campuseats/internal/delivery/context"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserHandler holds dependencies for account and session handlers.
type UserHandler struct {
	users    usecase.UserUsecase
	orders   usecase.OrderUsecase
	sessions *middleware.SessionMiddleware
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(
	users usecase.UserUsecase,
	orders usecase.OrderUsecase,
	sessions *middleware.SessionMiddleware,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		users:    users,
		orders:   orders,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates an account and signs it in.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.users.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.sessions.SetCookie(c, output.Session)

	return response.Success(c, http.StatusCreated, output.User)
}

// Login verifies credentials and binds a new session.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.users.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.sessions.SetCookie(c, output.Session)

	return response.Success(c, http.StatusOK, output.User)
}

// Logout destroys the current session, if any, and expires the cookie.
func (h *UserHandler) Logout(c echo.Context) error {
	if session, ok := deliverycontext.GetSession(c); ok {
		if err := h.users.Logout(c.Request().Context(), session.ID); err != nil {
			return errors.WithStack(err)
		}
	}

	h.sessions.ClearCookie(c)

	return response.Message(c, "Logged out")
}

// CurrentUser returns the signed-in user.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	uid := deliverycontext.SessionUserID(c)
	if uid == nil {
		return domainerrors.ErrAuthenticationRequired
	}

	user, err := h.users.CurrentUser(c.Request().Context(), *uid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// MyOrders lists the orders of the signed-in user.
func (h *UserHandler) MyOrders(c echo.Context) error {
	uid := deliverycontext.SessionUserID(c)
	if uid == nil {
		return domainerrors.ErrAuthenticationRequired
	}

	orders, err := h.orders.ListByUser(c.Request().Context(), *uid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders)
}
