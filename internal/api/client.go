// Package api is the HTTP client for the Brand-Cody pricing backend.
//
// Every call performs exactly one GET, with no retries and no client-side
// timeout, and returns the response body as an opaque JSON payload. The status
// code is recorded but not checked: error bodies from the backend are JSON and
// are returned like any other payload.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"codyplay/internal/catalog"
	"codyplay/internal/config"
	"codyplay/internal/jsonutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// RequestIDHeader carries a per-request uuid to the backend.
const RequestIDHeader = "X-Request-Id"

// Result is one completed query.
type Result struct {
	Op         Operation
	Category   catalog.Category // set for OpCategory only
	URL        string
	StatusCode int
	RequestID  string
	Elapsed    time.Duration
	Payload    json.RawMessage
}

// Client issues queries against a fixed base address.
type Client struct {
	base   string
	http   *http.Client
	tracer oteltrace.Tracer
	newID  func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for cfg's base address. The address is captured once.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		base:   cfg.APIBase(),
		http:   &http.Client{},
		tracer: noop.NewTracerProvider().Tracer("codyplay/api"),
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base address requests are sent to.
func (c *Client) BaseURL() string {
	return c.base
}

// LowestPriceByCategory fetches the lowest price per product category.
func (c *Client) LowestPriceByCategory(ctx context.Context) (*Result, error) {
	return c.Do(ctx, OpLowestPrice, "")
}

// CheapestBrandSet fetches the brand with the cheapest full set.
func (c *Client) CheapestBrandSet(ctx context.Context) (*Result, error) {
	return c.Do(ctx, OpBrandSet, "")
}

// CategoryMinMax fetches the cheapest and most expensive brand for cat.
func (c *Client) CategoryMinMax(ctx context.Context, cat catalog.Category) (*Result, error) {
	return c.Do(ctx, OpCategory, cat)
}

// ListBrands fetches all brands.
func (c *Client) ListBrands(ctx context.Context) (*Result, error) {
	return c.Do(ctx, OpBrands, "")
}

// ListProducts fetches all products.
func (c *Client) ListProducts(ctx context.Context) (*Result, error) {
	return c.Do(ctx, OpProducts, "")
}

// Do runs op. cat is required for OpCategory and ignored otherwise.
func (c *Client) Do(ctx context.Context, op Operation, cat catalog.Category) (*Result, error) {
	if op.TakesCategory() && !cat.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, catalog.ErrUnknownCategory, cat)
	}
	if !op.TakesCategory() {
		cat = ""
	}

	res := &Result{
		Op:        op,
		Category:  cat,
		URL:       c.base + op.Path(cat),
		RequestID: c.newID(),
	}

	ctx, span := c.tracer.Start(ctx, "api."+op.String(),
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", res.URL),
			attribute.String("codyplay.request_id", res.RequestID),
		),
	)
	defer span.End()
	if cat != "" {
		span.SetAttributes(attribute.String("codyplay.category", cat.String()))
	}

	err := c.get(ctx, res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("[api] %s GET %s failed: %v", res.RequestID, res.URL, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
	log.Printf("[api] %s GET %s -> %d (%s)", res.RequestID, res.URL, res.StatusCode, res.Elapsed.Round(time.Millisecond))
	return res, nil
}

func (c *Client) get(ctx context.Context, res *Result) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		return &TransportError{Op: res.Op, URL: res.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, res.RequestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: res.Op, URL: res.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: res.Op, URL: res.URL, Err: err}
	}
	res.StatusCode = resp.StatusCode
	res.Elapsed = time.Since(start)

	payload, err := jsonutil.Raw(body, "decode body")
	if err != nil {
		return &ParseError{Op: res.Op, URL: res.URL, StatusCode: resp.StatusCode, Err: err}
	}
	res.Payload = payload
	return nil
}
