// Package handler contains the worker's HTTP handlers.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/constants"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/pubsub"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PushHandler feeds Pub/Sub push deliveries of order events into the kitchen board.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	kitchen        usecase.KitchenUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Kitchen usecase.KitchenUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only real Google push deliveries carry an OIDC token.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop &&
		params.Config.Env.Env != constants.EnvLocal

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		kitchen:        params.Kitchen,
	}
}

// HandlePush acknowledges with 200 unless the envelope itself is unreadable.
// Events the kitchen rejects are acknowledged too, so Pub/Sub does not redeliver them forever.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushEnvelope
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := pushMsg.Event()
	if err != nil {
		h.logger.Error("[Worker] Unreadable push payload",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, event)
	ctx, reqLogger := deliverycontext.WithRequestScope(ctx, requestID, h.logger)

	if err := h.kitchen.HandleOrderEvent(ctx, event); err != nil {
		reqLogger.Error("[Worker] Dropping order event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.String("type", event.Type),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Debug("[Worker] Order event applied",
		slog.String("type", event.Type),
		slog.Int64("order_id", event.OrderID),
	)

	return c.NoContent(http.StatusOK)
}

// Tickets lists the open kitchen tickets.
func (h *PushHandler) Tickets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"tickets": h.kitchen.Tickets(c.Request().Context()),
	})
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PushEnvelope, event *service.OrderEvent) string {
	if requestID := pushMsg.RequestID(); requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.RequestIDFrom(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken validates the OIDC token Google attaches to push requests.
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the push endpoint URL.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
