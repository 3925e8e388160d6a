package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	server *httptest.Server
	orders atomic.Int32
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"data": data, "meta": map[string]string{"request_id": "req-1"}})
}

func fail(c echo.Context, status int, code, message string, details any) error {
	return c.JSON(status, map[string]any{
		"error": map[string]any{"code": code, "message": message, "details": details},
		"meta":  map[string]string{"request_id": "req-2"},
	})
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{}
	user := entity.User{ID: 1, Name: "Asha", Email: "asha@campus.edu"}

	e := echo.New()
	api := e.Group("/api")
	api.POST("/login", func(c echo.Context) error {
		c.SetCookie(&http.Cookie{Name: "campuseats.sid", Value: "signed", Path: "/"})

		return ok(c, http.StatusOK, user)
	})
	api.POST("/logout", func(c echo.Context) error {
		c.SetCookie(&http.Cookie{Name: "campuseats.sid", Value: "", Path: "/", MaxAge: -1})

		return ok(c, http.StatusOK, map[string]string{"message": "Logged out"})
	})
	api.GET("/user", func(c echo.Context) error {
		if cookie, err := c.Cookie("campuseats.sid"); err != nil || cookie.Value != "signed" {
			return fail(c, http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", "Authentication required", nil)
		}

		return ok(c, http.StatusOK, user)
	})
	api.GET("/menu-items/:category", func(c echo.Context) error {
		if c.Param("category") != string(entity.CategoryBreakfast) {
			return ok(c, http.StatusOK, []entity.MenuItem{})
		}

		return ok(c, http.StatusOK, []entity.MenuItem{{ID: 2, Name: "Dosa", Price: 50, Category: entity.CategoryBreakfast}})
	})
	api.GET("/user/:userId/orders", func(c echo.Context) error {
		return ok(c, http.StatusOK, []entity.Order{{ID: 9, TotalAmount: 100, Items: []entity.OrderItem{}}})
	})
	api.POST("/orders", func(c echo.Context) error {
		f.orders.Add(1)

		var req checkoutRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid order input", nil)
		}
		if len(req.CustomerName) < 3 {
			return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed",
				[]map[string]string{{"field": "customerName", "message": "too short"}})
		}

		return ok(c, http.StatusCreated, entity.Order{
			ID:           1,
			CustomerName: req.CustomerName,
			TotalAmount:  req.TotalAmount,
			Status:       entity.OrderStatusOrdered,
			Items:        req.Items,
			TokenNumber:  "20260115-007",
		})
	})

	f.server = httptest.NewServer(e)
	t.Cleanup(f.server.Close)

	return f
}

func newTestClient(t *testing.T, f *fakeAPI) *Client {
	t.Helper()

	c, err := New(f.server.URL + "/api/")
	require.NoError(t, err)

	return c
}

func fillCart(c *Client) {
	c.Cart().Add(entity.CartItem{ID: 2, Name: "Dosa", Price: 50, Quantity: 2})
	c.Cart().Add(entity.CartItem{ID: 3, Name: "Idli", Price: 30, Quantity: 1})
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}

func TestClient_SessionCookieRoundTrips(t *testing.T) {
	f := newFakeAPI(t)
	c := newTestClient(t, f)
	ctx := t.Context()

	_, err := c.CurrentUser(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "AUTHENTICATION_REQUIRED", apiErr.Code)
	assert.Equal(t, "req-2", apiErr.RequestID)

	user, err := c.Login(ctx, "asha@campus.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "asha@campus.edu", me.Email)

	require.NoError(t, c.Logout(ctx))
	_, err = c.CurrentUser(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_Checkout(t *testing.T) {
	t.Run("success clears the cart", func(t *testing.T) {
		f := newFakeAPI(t)
		c := newTestClient(t, f)
		fillCart(c)

		order, err := c.Checkout(t.Context(), Contact{Name: "Asha", Email: "asha@campus.edu", Phone: "9876543210"})
		require.NoError(t, err)
		assert.Equal(t, int64(130), order.TotalAmount)
		assert.Len(t, order.Items, 2)
		assert.True(t, c.Cart().IsEmpty())
	})

	t.Run("failure keeps the cart", func(t *testing.T) {
		f := newFakeAPI(t)
		c := newTestClient(t, f)
		fillCart(c)

		_, err := c.Checkout(t.Context(), Contact{Name: "A", Email: "asha@campus.edu", Phone: "9876543210"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
		assert.JSONEq(t, `[{"field":"customerName","message":"too short"}]`, string(apiErr.Details))

		assert.Equal(t, 2, c.Cart().Len())
		assert.Equal(t, int64(130), c.Cart().Total())
	})

	t.Run("empty cart never reaches the server", func(t *testing.T) {
		f := newFakeAPI(t)
		c := newTestClient(t, f)

		_, err := c.Checkout(t.Context(), Contact{Name: "Asha", Email: "asha@campus.edu", Phone: "9876543210"})
		require.ErrorIs(t, err, domainerrors.ErrEmptyCart)
		assert.Zero(t, f.orders.Load())
	})
}

func TestClient_CatalogAndHistory(t *testing.T) {
	f := newFakeAPI(t)
	c := newTestClient(t, f)

	items, err := c.MenuByCategory(t.Context(), entity.CategoryBreakfast)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dosa", items[0].Name)

	items, err = c.MenuByCategory(t.Context(), "Late Night")
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := c.OrdersByUser(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(100), orders[0].TotalAmount)
}
