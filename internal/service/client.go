package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fooddelivery/internal/cache"
	"fooddelivery/internal/model"
	"fooddelivery/internal/transition"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// Client talks JSON over HTTP to the food delivery backend.
type Client struct {
	baseURL  string
	client   *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithSearchCache caches SearchFoods results for ttl.
func WithSearchCache(ch cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = ch
		c.cacheTTL = ttl
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SearchFoods(ctx context.Context, query string) ([]model.MenuItem, error) {
	key := c.cache.GenerateKey("foods", query)
	if cached, err := c.cache.Get(ctx, key); err != nil {
		slog.Warn("search cache read failed", "key", key, "error", err)
	} else if cached != "" {
		var items []model.MenuItem
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
		slog.Warn("search cache entry corrupt", "key", key)
	}

	items := []model.MenuItem{}
	if err := c.do(ctx, http.MethodGet, "/foods?"+url.Values{"q": {query}}.Encode(), nil, &items); err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			slog.Warn("search cache write failed", "key", key, "error", err)
		}
	}
	return items, nil
}

func (c *Client) ListDeliveries(ctx context.Context) ([]model.DeliveryRecord, error) {
	deliveries := []model.DeliveryRecord{}
	if err := c.do(ctx, http.MethodGet, "/deliveries", nil, &deliveries); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	if deliveries == nil {
		deliveries = []model.DeliveryRecord{}
	}
	return deliveries, nil
}

func (c *Client) GetDelivery(ctx context.Context, orderID string) (*model.DeliveryRecord, error) {
	var d model.DeliveryRecord
	err := c.do(ctx, http.MethodGet, "/deliveries/"+url.PathEscape(orderID), nil, &d)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("get delivery %s: %w", orderID, ErrDeliveryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery %s: %w", orderID, err)
	}
	return &d, nil
}

func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (model.OrderAck, error) {
	var ack model.OrderAck
	if err := c.do(ctx, http.MethodPost, "/orders", req, &ack); err != nil {
		return model.OrderAck{}, fmt.Errorf("create order: %w", err)
	}
	return ack, nil
}

// Dispatch sends the request described by d.
func (c *Client) Dispatch(ctx context.Context, d transition.Descriptor) error {
	if err := c.do(ctx, d.Method, d.Path, d.Payload, nil); err != nil {
		return fmt.Errorf("dispatch %s %s: %w", d.Method, d.Path, err)
	}
	return nil
}

func (c *Client) AddTip(ctx context.Context, orderID string, tip decimal.Decimal) error {
	body := map[string]decimal.Decimal{"tip": tip}
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/tip", body, nil); err != nil {
		return fmt.Errorf("add tip: %w", err)
	}
	return nil
}

func (c *Client) AssignDeliveryMan(ctx context.Context, orderID, deliveryManID string) error {
	body := map[string]string{"deliveryManId": deliveryManID}
	if err := c.do(ctx, http.MethodPost, "/deliveries/"+url.PathEscape(orderID)+"/delivery-man", body, nil); err != nil {
		return fmt.Errorf("assign delivery man: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message string `json:"message"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
