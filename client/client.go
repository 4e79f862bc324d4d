// Package client talks to the storefront JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/infpro/storefront-api/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default traced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products", nil, &out)
	return out, err
}

// SearchProducts lets the server filter by title substring and category.
// With neither set it is ListProducts.
func (c *Client) SearchProducts(ctx context.Context, search, cat string) ([]models.Product, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if cat != "" {
		q.Set("cat", cat)
	}
	if len(q) == 0 {
		return c.ListProducts(ctx)
	}
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPost, "/api/products", in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out)
	return out, err
}

// Me returns the user behind the client's token.
func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	var out models.PublicUser
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out, err
}

// SubmitOrder posts a checked-out cart. It satisfies checkout.OrderSubmitter.
func (c *Client) SubmitOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", in, &out)
	return out, err
}

func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	err := c.do(ctx, http.MethodGet, "/api/reviews", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
