package impl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"go.uber.org/fx"
)

// kitchenService keeps the ticket board for the worker process.
type kitchenService struct {
	mu      sync.Mutex
	tickets map[int64]*usecase.Ticket
	// closed remembers orders that reached a terminal status so a late
	// order.created redelivery cannot resurrect them. Entries expire once the
	// newest event seen is closedRetention past their close time.
	closed map[int64]time.Time
	latest time.Time
	logger *slog.Logger
}

// closedRetention outlives the redelivery window of both Pub/Sub and Kafka.
const closedRetention = 24 * time.Hour

// KitchenServiceParams holds dependencies for KitchenService, injected by Fx.
type KitchenServiceParams struct {
	fx.In

	Logger *slog.Logger
}

// NewKitchenService creates an empty ticket board.
func NewKitchenService(params KitchenServiceParams) usecase.KitchenUsecase {
	return &kitchenService{
		tickets: make(map[int64]*usecase.Ticket),
		closed:  make(map[int64]time.Time),
		logger:  params.Logger,
	}
}

func (srv *kitchenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// HandleOrderEvent folds the event into the board.
func (srv *kitchenService) HandleOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	if event == nil || event.OrderID <= 0 {
		return domainerrors.NewFieldError("order_id", "Event must reference an order")
	}
	if event.Type != service.OrderEventCreated && event.Type != service.OrderEventStatusChanged {
		return domainerrors.NewFieldError("type", "Unknown event type "+event.Type)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if event.OccurredAt.After(srv.latest) {
		srv.latest = event.OccurredAt
	}

	if closedAt, ok := srv.closed[event.OrderID]; ok && !event.OccurredAt.After(closedAt) {
		srv.log(ctx).Debug("Ignoring event for closed ticket", slog.Int64("orderID", event.OrderID))

		return nil
	}

	ticket, exists := srv.tickets[event.OrderID]
	if exists && event.OccurredAt.Before(ticket.UpdatedAt) {
		if event.Type == service.OrderEventCreated {
			// A late creation only backfills what the earlier status change lacked.
			ticket.CreatedAt = event.OccurredAt
			ticket.TotalAmount = event.TotalAmount
			ticket.ItemCount = event.ItemCount

			return nil
		}

		srv.log(ctx).Debug("Ignoring stale order event",
			slog.Int64("orderID", event.OrderID),
			slog.String("type", event.Type),
		)

		return nil
	}

	if entity.IsTerminalOrderStatus(event.Status) {
		delete(srv.tickets, event.OrderID)
		srv.closed[event.OrderID] = event.OccurredAt
		srv.pruneClosed()
		srv.log(ctx).Info("Ticket closed", slog.Int64("orderID", event.OrderID), slog.String("status", event.Status))

		return nil
	}

	if !exists {
		ticket = &usecase.Ticket{
			OrderID:   event.OrderID,
			CreatedAt: event.OccurredAt,
		}
		srv.tickets[event.OrderID] = ticket
	}

	// A status change can arrive before its order.created and still opens the ticket.
	ticket.Status = event.Status
	ticket.UpdatedAt = event.OccurredAt
	if event.TokenNumber != "" {
		ticket.TokenNumber = event.TokenNumber
	}
	if event.Type == service.OrderEventCreated || ticket.ItemCount == 0 {
		ticket.TotalAmount = event.TotalAmount
		ticket.ItemCount = event.ItemCount
	}

	srv.log(ctx).Info("Ticket updated",
		slog.Int64("orderID", event.OrderID),
		slog.String("token", ticket.TokenNumber),
		slog.String("status", ticket.Status),
	)

	return nil
}

// Tickets returns copies of the open tickets, oldest first.
func (srv *kitchenService) Tickets(_ context.Context) []*usecase.Ticket {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.pruneClosed()

	tickets := make([]*usecase.Ticket, 0, len(srv.tickets))
	for _, ticket := range srv.tickets {
		t := *ticket
		tickets = append(tickets, &t)
	}

	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].OrderID < tickets[j].OrderID
		}

		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})

	return tickets
}

// pruneClosed forgets terminal orders closed more than closedRetention before the
// newest event. Callers hold mu.
func (srv *kitchenService) pruneClosed() {
	cutoff := srv.latest.Add(-closedRetention)
	for orderID, closedAt := range srv.closed {
		if closedAt.Before(cutoff) {
			delete(srv.closed, orderID)
		}
	}
}
