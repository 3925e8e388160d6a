package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"campuseats/config"
	"campuseats/internal/delivery"
	apimiddleware "campuseats/internal/delivery/api/middleware"
	"campuseats/internal/delivery/api/router"
	"campuseats/internal/delivery/api/validator"
	"campuseats/internal/delivery/middleware"
	"campuseats/internal/domain/lifecycle"
	"campuseats/internal/errors"
	"campuseats/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	RouterParams router.RouterParams
}

// NewServer builds the API echo instance and registers its shutdown hook.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: NewEcho(params.Cfg, params.Logger, params.Metrics, params.RouterParams),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho assembles middleware and routes. It is separate from NewServer so
// tests can drive the full stack through httptest.
func NewEcho(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, routerParams router.RouterParams) *echo.Echo {
	echoServer := middleware.NewBaseEcho(cfg, logger)
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	echoServer.Use(middleware.NewMetricsMiddleware(m).Handle)
	echoServer.Use(echomiddleware.CORSWithConfig(corsConfig(cfg.HTTP.AllowOrigins)))
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	echoServer.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	echoServer.Validator = validator.New()

	router.NewRouter(routerParams).RegisterRoutes(echoServer)

	return echoServer
}

// corsConfig lets the listed origins send the session cookie. With no list
// every origin is reflected, which suits local development only.
func corsConfig(allowOrigins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
	}
	if len(allowOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) (bool, error) { return true, nil }
	} else {
		cfg.AllowOrigins = allowOrigins
	}

	return cfg
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server",
		slog.String("host_port", hostPort),
		slog.String("base_path", s.cfg.HTTP.BasePath),
	)
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
