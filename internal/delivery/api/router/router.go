// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"campuseats/config"
	"campuseats/internal/delivery/api/middleware"
	"campuseats/internal/delivery/api/router/handler"
	"campuseats/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	MenuHandler       *handler.MenuHandler
	OrderHandler      *handler.OrderHandler
	SessionMiddleware *middleware.SessionMiddleware
	Metrics           *metrics.Metrics
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	menuHandler       *handler.MenuHandler
	orderHandler      *handler.OrderHandler
	sessionMiddleware *middleware.SessionMiddleware
	metrics           *metrics.Metrics
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		menuHandler:       params.MenuHandler,
		orderHandler:      params.OrderHandler,
		sessionMiddleware: params.SessionMiddleware,
		metrics:           params.Metrics,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	api := e.Group(r.config.HTTP.BasePath)
	api.Use(r.sessionMiddleware.Load)

	api.GET("/health", handler.HealthCheck)

	// Account routes
	api.POST("/register", r.userHandler.Register)
	api.POST("/login", r.userHandler.Login, middleware.NewLoginRateLimiter(r.config))
	api.POST("/logout", r.userHandler.Logout)

	userGroup := api.Group("/user")
	{
		userGroup.GET("", r.userHandler.CurrentUser, r.sessionMiddleware.Require)
		userGroup.GET("/orders", r.userHandler.MyOrders, r.sessionMiddleware.Require)
		userGroup.GET("/:userId/orders", r.orderHandler.ListUserOrders)
	}

	// Catalog routes
	api.GET("/categories", r.menuHandler.ListCategories)
	api.GET("/menu-items", r.menuHandler.ListMenuItems)
	api.GET("/menu-items/:category", r.menuHandler.ListByCategory)
	api.GET("/menu-item/:id", r.menuHandler.GetMenuItem)

	// Order routes
	ordersGroup := api.Group("/orders")
	{
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		ordersGroup.GET("/:id/payment-qr", r.orderHandler.PaymentQR)
	}
}
