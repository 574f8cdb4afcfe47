package cli

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"codyplay/internal/catalog"
	"codyplay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type backend struct {
	mu    sync.Mutex
	paths []string
}

func (b *backend) Paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.paths = append(b.paths, r.URL.Path)
		b.mu.Unlock()
		switch r.URL.Path {
		case "/api/products/lowest-price":
			_, _ = io.WriteString(w, `{"totalPrice":34100,"categories":[]}`)
		case "/api/products/category/PANTS":
			_, _ = io.WriteString(w, `{"category":"바지"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":404}`)
		}
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func execute(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	a := &app{loader: config.NewLoader().WithPaths().WithEnv(func(k string) string { return env[k] })}
	cmd := newRootCommand(a, "1.2.3", "abc123", "2026-01-01")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestQuery_PrintsIndentedPayload(t *testing.T) {
	b, srv := newBackend(t)

	out, _, err := execute(t, nil, "lowest-price", "--base-url", srv.URL+"/api")
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"totalPrice\": 34100,\n  \"categories\": []\n}\n", out)
	assert.Equal(t, []string{"/api/products/lowest-price"}, b.Paths())
}

func TestQuery_BaseFromEnvironment(t *testing.T) {
	b, srv := newBackend(t)

	_, _, err := execute(t, map[string]string{"VITE_API_BASE": srv.URL + "/api"}, "category", "pants")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/products/category/PANTS"}, b.Paths())
}

func TestQuery_CategoryDisplayName(t *testing.T) {
	b, srv := newBackend(t)

	out, _, err := execute(t, nil, "category", "바지", "-b", srv.URL+"/api")
	require.NoError(t, err)
	assert.Contains(t, out, `"category": "바지"`)
	assert.Equal(t, []string{"/api/products/category/PANTS"}, b.Paths())
}

func TestQuery_UnknownCategory(t *testing.T) {
	b, srv := newBackend(t)

	_, _, err := execute(t, nil, "category", "SHOES", "-b", srv.URL+"/api")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
	assert.Empty(t, b.Paths())
}

func TestQuery_NonSuccessStatusPrintsBody(t *testing.T) {
	_, srv := newBackend(t)

	out, errOut, err := execute(t, nil, "brands", "-b", srv.URL+"/api")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": 404`)
	assert.Contains(t, errOut, "HTTP 404")
}

func TestQuery_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	out, _, err := execute(t, nil, "brand-set", "-b", base)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestConfigure_FlagsOverrideFile(t *testing.T) {
	b, srv := newBackend(t)
	path := filepath.Join(t.TempDir(), "codyplay.yaml")
	body := "base_url: " + srv.URL + "/api\nordering: request\nverbose: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	a := &app{loader: config.NewLoader().WithPaths().WithEnv(func(string) string { return "" })}
	cmd := newRootCommand(a, "", "", "")
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"lowest-price", "--config", path, "--ordering", "ARRIVAL"})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, a.cfg)
	assert.Equal(t, srv.URL+"/api", a.cfg.BaseURL)
	assert.Equal(t, config.OrderArrival, a.cfg.Ordering)
	assert.True(t, a.cfg.Verbose)
	assert.Equal(t, []string{"/api/products/lowest-price"}, b.Paths())
}

func TestConfigure_MissingConfigFile(t *testing.T) {
	_, _, err := execute(t, nil, "brands", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigure_InvalidOrdering(t *testing.T) {
	_, _, err := execute(t, nil, "brands", "--ordering", "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ordering")
}

func TestConfigure_FlagRepairsInvalidEnvironment(t *testing.T) {
	b, srv := newBackend(t)
	env := map[string]string{"CODYPLAY_ORDERING": "random"}

	_, _, err := execute(t, env, "lowest-price", "-b", srv.URL+"/api")
	require.Error(t, err, "an invalid environment value without an override is rejected")

	_, _, err = execute(t, env, "lowest-price", "-b", srv.URL+"/api", "--ordering", "arrival")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/products/lowest-price"}, b.Paths())
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codyplay 1.2.3 (abc123) built on 2026-01-01")
}

func TestVersion_DevBuild(t *testing.T) {
	a := &app{loader: config.NewLoader().WithPaths()}
	cmd := newRootCommand(a, "dev", "none", "unknown")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "codyplay development (local-build) built on local-build")
}
