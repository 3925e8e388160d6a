package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"testing"
	"time"

	"campuseats/config"
	apimiddleware "campuseats/internal/delivery/api/middleware"
	"campuseats/internal/delivery/api/response"
	"campuseats/internal/delivery/api/router"
	"campuseats/internal/delivery/api/router/handler"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/auth"
	"campuseats/internal/infra/metrics"
	"campuseats/internal/infra/persistence/memory"
	"campuseats/internal/infra/qrcode"
	"campuseats/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope[T any] struct {
	Data  T                   `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  response.MetaInfo   `json:"meta"`
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testAPI struct {
	server    *httptest.Server
	client    *http.Client
	cfg       *config.Config
	publisher *recordingPublisher
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "campuseats-test"
	cfg.HTTP.BasePath = "/api"
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Session = config.SessionConfig{
		CookieName: "campuseats.sid",
		TTL:        time.Hour,
		Secret:     "test-secret-0123456789",
	}
	cfg.Orders.TokenLocation = "UTC"
	cfg.Payment = &config.PaymentConfig{VPA: "campuseats@ybl", PayeeName: "CampusEats", QRSize: 256, ErrorCorrectionLevel: "M"}

	return cfg
}

func newTestAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()

	cfg := newTestConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	publisher := &recordingPublisher{}

	signer, err := auth.NewJWTSessionSigner(cfg)
	require.NoError(t, err)
	tokens, err := auth.NewPickupTokenGenerator(cfg)
	require.NoError(t, err)
	qr, err := qrcode.NewPaymentQRService(cfg)
	require.NoError(t, err)

	menuRepo := memory.NewDefaultMenuRepository()
	sessions := impl.NewSessionService(impl.SessionServiceParams{
		SessionRepo: memory.NewSessionRepository(),
		Signer:      signer,
		Metrics:     m,
		Config:      cfg,
		Logger:      logger,
	})
	users := impl.NewUserService(impl.UserServiceParams{
		UserRepo: memory.NewUserRepository(),
		Hasher:   auth.NewBcryptHasherWithPolicy(bcrypt.MinCost, auth.DefaultPasswordPolicy()),
		Sessions: sessions,
		Metrics:  m,
		Logger:   logger,
	})
	orders := impl.NewOrderService(impl.OrderServiceParams{
		OrderRepo: memory.NewOrderRepository(),
		MenuRepo:  menuRepo,
		Tokens:    tokens,
		QRService: qr,
		Publisher: publisher,
		Metrics:   m,
		Config:    cfg,
		Logger:    logger,
	})
	catalog := impl.NewCatalogService(impl.CatalogServiceParams{MenuRepo: menuRepo, Logger: logger})

	sessionMiddleware := apimiddleware.NewSessionMiddleware(sessions, cfg, logger)
	e := NewEcho(cfg, logger, m, router.RouterParams{
		UserHandler:       handler.NewUserHandler(users, orders, sessionMiddleware, logger),
		MenuHandler:       handler.NewMenuHandler(catalog),
		OrderHandler:      handler.NewOrderHandler(orders, logger),
		SessionMiddleware: sessionMiddleware,
		Metrics:           m,
		Config:            cfg,
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &testAPI{
		server:    server,
		client:    newClient(t),
		cfg:       cfg,
		publisher: publisher,
	}
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func doJSON[T any](t *testing.T, api *testAPI, client *http.Client, method, path string, body any) (int, envelope[T]) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, api.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp.StatusCode, env
}

func orderBody(items []entity.OrderItem, total int64) map[string]any {
	return map[string]any{
		"customerName":  "Asha Rao",
		"customerEmail": "asha@campus.edu",
		"customerPhone": "9876543210",
		"totalAmount":   total,
		"items":         items,
	}
}

func TestAPI_EndToEndOrderHistory(t *testing.T) {
	api := newTestAPI(t)

	status, registered := doJSON[entity.User](t, api, api.client, http.MethodPost, "/api/register",
		map[string]string{"name": "Asha", "email": "asha@campus.edu", "password": "secret1"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "asha@campus.edu", registered.Data.Email)
	assert.NotEmpty(t, registered.Meta.RequestID)

	// Login from a fresh client.
	client := newClient(t)
	status, loggedIn := doJSON[entity.User](t, api, client, http.MethodPost, "/api/login",
		map[string]string{"email": "ASHA@campus.edu", "password": "secret1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.Data.ID, loggedIn.Data.ID)

	items := []entity.OrderItem{{ID: 2, Name: "Dosa", Price: 50, Quantity: 3}}
	status, created := doJSON[entity.Order](t, api, client, http.MethodPost, "/api/orders", orderBody(items, 150))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(150), created.Data.TotalAmount)
	assert.Equal(t, entity.OrderStatusOrdered, created.Data.Status)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-\d{3}$`), created.Data.TokenNumber)
	require.NotNil(t, created.Data.UserID)
	assert.Equal(t, registered.Data.ID, *created.Data.UserID)

	// A guest order from an anonymous client must not show up in history.
	status, _ = doJSON[entity.Order](t, api, newClient(t), http.MethodPost, "/api/orders", orderBody(items, 150))
	require.Equal(t, http.StatusCreated, status)

	status, history := doJSON[[]entity.Order](t, api, newClient(t), http.MethodGet,
		fmt.Sprintf("/api/user/%d/orders", registered.Data.ID), nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Data, 1)
	assert.Equal(t, created.Data.ID, history.Data[0].ID)
	assert.Equal(t, created.Data.TokenNumber, history.Data[0].TokenNumber)

	status, mine := doJSON[[]entity.Order](t, api, client, http.MethodGet, "/api/user/orders", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine.Data, 1)

	status, all := doJSON[[]entity.Order](t, api, client, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, all.Data, 2)

	assert.Len(t, api.publisher.events, 2)
}

func TestAPI_LogoutThenCurrentUserIsUnauthorized(t *testing.T) {
	api := newTestAPI(t)

	status, _ := doJSON[entity.User](t, api, api.client, http.MethodPost, "/api/register",
		map[string]string{"name": "Asha", "email": "asha@campus.edu", "password": "secret1"})
	require.Equal(t, http.StatusCreated, status)

	status, me := doJSON[entity.User](t, api, api.client, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Asha", me.Data.Name)

	status, _ = doJSON[response.MessageData](t, api, api.client, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON[entity.User](t, api, api.client, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTHENTICATION_REQUIRED", env.Error.Code)
}

func TestAPI_TamperedCookieIsAnonymous(t *testing.T) {
	api := newTestAPI(t)

	serverURL, err := url.Parse(api.server.URL)
	require.NoError(t, err)
	api.client.Jar.SetCookies(serverURL, []*http.Cookie{{Name: "campuseats.sid", Value: "forged.value.here", Path: "/"}})

	status, env := doJSON[entity.User](t, api, api.client, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTHENTICATION_REQUIRED", env.Error.Code)
}

func TestAPI_AccountErrors(t *testing.T) {
	api := newTestAPI(t)

	status, _ := doJSON[entity.User](t, api, api.client, http.MethodPost, "/api/register",
		map[string]string{"name": "Asha", "email": "asha@campus.edu", "password": "secret1"})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON[entity.User](t, api, newClient(t), http.MethodPost, "/api/register",
		map[string]string{"name": "Asha", "email": "ASHA@Campus.edu", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)

	status, env = doJSON[entity.User](t, api, newClient(t), http.MethodPost, "/api/register",
		map[string]string{"email": "b@campus.edu", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = doJSON[entity.User](t, api, newClient(t), http.MethodPost, "/api/login",
		map[string]string{"email": "asha@campus.edu", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Nil(t, env.Error.Details)

	status, unknown := doJSON[entity.User](t, api, newClient(t), http.MethodPost, "/api/login",
		map[string]string{"email": "nobody@campus.edu", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, env.Error.Message, unknown.Error.Message)
}

func TestAPI_Catalog(t *testing.T) {
	api := newTestAPI(t)

	status, all := doJSON[[]entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-items", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, all.Data, 14)

	status, snacks := doJSON[[]entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-items/snacks", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, snacks.Data)

	status, none := doJSON[[]entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-items/dinner", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)

	status, item := doJSON[entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-item/2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dosa", item.Data.Name)

	status, env := doJSON[entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-item/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	for _, id := range []string{"0", "-3"} {
		status, env = doJSON[entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-item/"+id, nil)
		assert.Equal(t, http.StatusBadRequest, status, id)
		assert.Equal(t, "INVALID_ID", env.Error.Code, id)
	}

	status, env = doJSON[entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-item/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "MENU_ITEM_NOT_FOUND", env.Error.Code)

	status, categories := doJSON[[]string](t, api, api.client, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"breakfast", "lunch", "snacks"}, categories.Data)
}

func TestAPI_OrderErrorsAndStatus(t *testing.T) {
	api := newTestAPI(t)
	items := []entity.OrderItem{{ID: 2, Name: "Dosa", Price: 50, Quantity: 2}}

	status, env := doJSON[entity.Order](t, api, api.client, http.MethodPost, "/api/orders", orderBody(nil, 0))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMPTY_CART", env.Error.Code)

	bad := orderBody(items, 100)
	bad["customerPhone"] = "12ab"
	status, env = doJSON[entity.Order](t, api, api.client, http.MethodPost, "/api/orders", bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	details, ok := env.Error.Details.([]any)
	require.True(t, ok)
	first, ok := details[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "customerPhone", first["field"])

	status, created := doJSON[entity.Order](t, api, api.client, http.MethodPost, "/api/orders", orderBody(items, 100))
	require.Equal(t, http.StatusCreated, status)
	assert.Nil(t, created.Data.UserID)

	path := fmt.Sprintf("/api/orders/%d", created.Data.ID)
	status, updated := doJSON[entity.Order](t, api, api.client, http.MethodPatch, path+"/status", map[string]string{"status": "ready"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", updated.Data.Status)

	status, fetched := doJSON[entity.Order](t, api, api.client, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", fetched.Data.Status)
	assert.Equal(t, items, fetched.Data.Items)

	status, env = doJSON[entity.Order](t, api, api.client, http.MethodPatch, "/api/orders/999/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ORDER_NOT_FOUND", env.Error.Code)

	status, env = doJSON[entity.Order](t, api, api.client, http.MethodGet, "/api/orders/x", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	resp, err := api.client.Get(api.server.URL + path + "/payment-qr")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestAPI_LoginRateLimited(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.HTTP.LoginRateLimit = 1 })
	creds := map[string]string{"email": "nobody@campus.edu", "password": "secret1"}

	status, _ := doJSON[entity.User](t, api, api.client, http.MethodPost, "/api/login", creds)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := doJSON[entity.User](t, api, api.client, http.MethodPost, "/api/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	resp, err := api.client.Get(api.server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ := doJSON[[]entity.MenuItem](t, api, api.client, http.MethodGet, "/api/menu-items", nil)
	require.Equal(t, http.StatusOK, status)

	resp, err = api.client.Get(api.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `campuseats_http_requests_total{method="GET",route="/api/menu-items",status="200"} 1`)
}

func TestServer_CORSAllowList(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.HTTP.AllowOrigins = []string{"http://campus.example"}
	})

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, api.server.URL+"/api/orders", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := api.client.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })

		return resp
	}

	allowed := preflight("http://campus.example")
	assert.Equal(t, "http://campus.example", allowed.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header.Get("Access-Control-Allow-Credentials"))

	denied := preflight("http://evil.example")
	assert.Empty(t, denied.Header.Get("Access-Control-Allow-Origin"))
}
