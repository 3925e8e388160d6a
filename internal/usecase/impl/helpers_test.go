package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"campuseats/config"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/auth"
	"campuseats/internal/infra/persistence/memory"
	"campuseats/internal/infra/qrcode"
	"campuseats/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "campuseats.sid",
			TTL:        time.Hour,
			Secret:     "test-secret-0123456789",
		},
	}
	cfg.Env.ServiceName = "campuseats-test"

	return cfg
}

// recordingMetrics captures business counters.
type recordingMetrics struct {
	mu              sync.Mutex
	submitted       int
	statuses        []string
	logins          []string
	purged          int
	publishFailures int
}

func (m *recordingMetrics) OrderSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted++
}

func (m *recordingMetrics) OrderStatusUpdated(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

func (m *recordingMetrics) Login(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins = append(m.logins, result)
}

func (m *recordingMetrics) SessionsPurged(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged += n
}

func (m *recordingMetrics) EventPublishFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFailures++
}

// mockEventPublisher is a testify mock for service.EventPublisher.
type mockEventPublisher struct {
	mock.Mock
}

func newMockEventPublisher(t *testing.T) *mockEventPublisher {
	m := &mockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type fixedTokenGenerator string

func (g fixedTokenGenerator) Generate(time.Time) string {
	return string(g)
}

// serviceFixtures wires every use case to in-memory stores.
type serviceFixtures struct {
	cfg       *config.Config
	users     usecase.UserUsecase
	sessions  usecase.SessionUsecase
	catalog   usecase.CatalogUsecase
	orders    usecase.OrderUsecase
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	publisher *mockEventPublisher
	metrics   *recordingMetrics
}

func createTestServices(t *testing.T, mutate ...func(*config.Config)) serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := newDiscardLogger()
	metrics := &recordingMetrics{}
	publisher := newMockEventPublisher(t)

	signer, err := auth.NewJWTSessionSigner(cfg)
	require.NoError(t, err)

	userRepo := memory.NewUserRepository()
	orderRepo := memory.NewOrderRepository()
	menuRepo := memory.NewDefaultMenuRepository()

	sessions := NewSessionService(SessionServiceParams{
		SessionRepo: memory.NewSessionRepository(),
		Signer:      signer,
		Metrics:     metrics,
		Config:      cfg,
		Logger:      logger,
	})

	users := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   auth.NewBcryptHasherWithPolicy(bcrypt.MinCost, auth.DefaultPasswordPolicy()),
		Sessions: sessions,
		Metrics:  metrics,
		Logger:   logger,
	})

	orders := NewOrderService(OrderServiceParams{
		OrderRepo: orderRepo,
		MenuRepo:  menuRepo,
		Tokens:    fixedTokenGenerator("20260115-123"),
		QRService: qrcode.NewQRCodeService("campuseats@ybl", "CampusEats", 256, "M"),
		Publisher: publisher,
		Metrics:   metrics,
		Config:    cfg,
		Logger:    logger,
	})

	return serviceFixtures{
		cfg:       cfg,
		users:     users,
		sessions:  sessions,
		catalog:   NewCatalogService(CatalogServiceParams{MenuRepo: menuRepo, Logger: logger}),
		orders:    orders,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		publisher: publisher,
		metrics:   metrics,
	}
}
