package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"codyplay/internal/catalog"
	"codyplay/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeBackend records every request path and answers with a fixed body per path.
type fakeBackend struct {
	mu       sync.Mutex
	paths    []string
	headers  []http.Header
	bodies   map[string]string
	statuses map[string]int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		bodies: map[string]string{
			"/api/products/lowest-price":   `{"categories":[],"totalPrice":34100}`,
			"/api/brands/lowest-price":     `{"lowestPrice":{"brand":"D","totalPrice":36100}}`,
			"/api/products/category/PANTS": `{"category":"바지","min":{"brand":"D","price":1500},"max":{"brand":"I","price":4100}}`,
			"/api/products/category/TOP":   `{"category":"상의"}`,
			"/api/brands":                  `[{"id":1,"name":"A"}]`,
			"/api/products":                `[]`,
		},
		statuses: map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.paths = append(fb.paths, r.URL.Path)
		fb.headers = append(fb.headers, r.Header.Clone())
		body, ok := fb.bodies[r.URL.Path]
		status := fb.statuses[r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":404,"error":"Not Found"}`)
			return
		}
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) Paths() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.paths...)
}

func newTestClient(baseURL string, opts ...Option) *Client {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	return New(cfg, opts...)
}

func TestClient_OneRequestPerOperation(t *testing.T) {
	tests := []struct {
		name     string
		call     func(*Client) (*Result, error)
		wantPath string
	}{
		{"lowest price", func(c *Client) (*Result, error) { return c.LowestPriceByCategory(context.Background()) }, "/api/products/lowest-price"},
		{"brand set", func(c *Client) (*Result, error) { return c.CheapestBrandSet(context.Background()) }, "/api/brands/lowest-price"},
		{"category", func(c *Client) (*Result, error) { return c.CategoryMinMax(context.Background(), catalog.Pants) }, "/api/products/category/PANTS"},
		{"brands", func(c *Client) (*Result, error) { return c.ListBrands(context.Background()) }, "/api/brands"},
		{"products", func(c *Client) (*Result, error) { return c.ListProducts(context.Background()) }, "/api/products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, srv := newFakeBackend(t)
			c := newTestClient(srv.URL + "/api/")

			res, err := tt.call(c)
			require.NoError(t, err)

			assert.Equal(t, []string{tt.wantPath}, fb.Paths())
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, srv.URL+tt.wantPath, res.URL)
			assert.JSONEq(t, fb.bodies[tt.wantPath], string(res.Payload))
		})
	}
}

func TestClient_CategoryPantsOnlyHitsPantsPath(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(srv.URL + "/api")

	res, err := c.CategoryMinMax(context.Background(), catalog.Pants)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/products/category/PANTS"}, fb.Paths())
	assert.Equal(t, catalog.Pants, res.Category)
}

func TestClient_PayloadKeepsBodyBytes(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.bodies["/api/products/lowest-price"] = `{"z":1,"a":[3,2,1]}`
	c := newTestClient(srv.URL + "/api")

	res, err := c.LowestPriceByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":[3,2,1]}`, string(res.Payload))
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.statuses["/api/brands/lowest-price"] = http.StatusInternalServerError
	fb.bodies["/api/brands/lowest-price"] = `{"status":500,"error":"Internal Server Error","message":"boom"}`
	c := newTestClient(srv.URL + "/api")

	res, err := c.CheapestBrandSet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, string(res.Payload), "boom")
}

func TestClient_ParseFailure(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.bodies["/api/products/lowest-price"] = `<html>gateway</html>`
	c := newTestClient(srv.URL + "/api")

	res, err := c.LowestPriceByCategory(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
	assert.Equal(t, OpLowestPrice, perr.Op)
	assert.Equal(t, http.StatusOK, perr.StatusCode)
	assert.Len(t, fb.Paths(), 1)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := newTestClient(base)
	_, err := c.CheapestBrandSet(context.Background())
	require.Error(t, err)

	var terr *TransportError
	require.True(t, errors.As(err, &terr), "want *TransportError, got %T", err)
	assert.Equal(t, OpBrandSet, terr.Op)
	assert.Equal(t, base+"/brands/lowest-price", terr.URL)
}

func TestClient_EmptyBaseIsTransportFailure(t *testing.T) {
	c := newTestClient("")
	_, err := c.LowestPriceByCategory(context.Background())

	var terr *TransportError
	require.True(t, errors.As(err, &terr), "want *TransportError, got %T", err)
	assert.Equal(t, "/products/lowest-price", terr.URL)
}

func TestClient_UnknownCategorySendsNothing(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(srv.URL + "/api")

	_, err := c.CategoryMinMax(context.Background(), catalog.Category("SHOES"))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
	assert.Empty(t, fb.Paths())
}

func TestClient_CancelledContext(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(srv.URL + "/api")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.LowestPriceByCategory(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_RequestIDHeader(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(srv.URL + "/api")

	res, err := c.ListBrands(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RequestID)
	require.NoError(t, err)
	require.Len(t, fb.headers, 1)
	assert.Equal(t, res.RequestID, fb.headers[0].Get(RequestIDHeader))
	assert.Equal(t, "application/json", fb.headers[0].Get("Accept"))
}

func TestClient_RecordsSpan(t *testing.T) {
	_, srv := newFakeBackend(t)
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := newTestClient(srv.URL+"/api", WithTracer(tp.Tracer("test")))
	_, err := c.CategoryMinMax(context.Background(), catalog.Hat)
	require.NoError(t, err, "HAT has no fixture; the 404 JSON body is still a payload")

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "api.category", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "HAT", attrs["codyplay.category"])
	assert.Equal(t, "404", attrs["http.status_code"])
}

func TestOperation_Paths(t *testing.T) {
	assert.Equal(t, "/products/lowest-price", OpLowestPrice.Path(catalog.Top))
	assert.Equal(t, "/brands/lowest-price", OpBrandSet.Path(catalog.Top))
	assert.Equal(t, "/products/category/SOCKS", OpCategory.Path(catalog.Socks))
	assert.Equal(t, []Operation{OpLowestPrice, OpBrandSet, OpCategory}, Triggers)
	assert.True(t, OpCategory.TakesCategory())
	assert.False(t, OpBrandSet.TakesCategory())
}
