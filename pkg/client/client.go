// Package client is a Go SDK for the CampusEats API. It keeps the session
// cookie in a jar and holds the shopping cart on the client side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    json.RawMessage
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("campuseats: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Contact is the customer information attached to an order at checkout.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Client talks to one API base URL, for example "http://localhost:5000/api".
type Client struct {
	baseURL    string
	httpClient *http.Client
	cart       *entity.Cart
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport swaps the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New creates a client with an empty cookie jar and an empty cart.
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrap(err, "invalid base URL")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: defaultTimeout},
		cart:       entity.NewCart(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Cart returns the client-held cart.
func (c *Client) Cart() *entity.Cart {
	return c.cart
}

// Register creates an account and keeps the returned session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var user entity.User
	if err := c.do(ctx, http.MethodPost, "/register", body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*entity.User, error) {
	body := map[string]string{"email": email, "password": password}

	var user entity.User
	if err := c.do(ctx, http.MethodPost, "/login", body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout ends the session. It succeeds for anonymous clients too.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// CurrentUser returns the signed-in user or a 401 APIError.
func (c *Client) CurrentUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Menu lists the whole catalog.
func (c *Client) Menu(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu-items", nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// MenuByCategory lists one category. Unknown categories yield an empty list.
func (c *Client) MenuByCategory(ctx context.Context, category entity.Category) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu-items/"+url.PathEscape(string(category)), nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// MyOrders lists the signed-in user's orders in creation order.
func (c *Client) MyOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.do(ctx, http.MethodGet, "/user/orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// OrdersByUser lists the orders of any user id.
func (c *Client) OrdersByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	var orders []entity.Order
	path := "/user/" + strconv.FormatInt(userID, 10) + "/orders"
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

type checkoutRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	TotalAmount   int64              `json:"totalAmount"`
	Items         []entity.OrderItem `json:"items"`
}

// Checkout submits the cart as an order. The cart is cleared only when the
// server accepts the order; on any error it is left as it was.
func (c *Client) Checkout(ctx context.Context, contact Contact) (*entity.Order, error) {
	if c.cart.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	body := checkoutRequest{
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		CustomerPhone: contact.Phone,
		TotalAmount:   c.cart.Total(),
		Items:         c.cart.Snapshot(),
	}

	var order entity.Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return nil, err
	}
	c.cart.Clear()

	return &order, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "decode %s %s response (status %d)", method, path, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: env.Meta.RequestID}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}

		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(env.Data, out), "decode data")
}
