package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dimdim-server/src/db/memory"
	"dimdim-server/src/handlers"
	"dimdim-server/src/models"
	"dimdim-server/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	store := memory.New()
	clients := services.NewClientService(store.Clients(), store)
	transactions := services.NewTransactionService(store.Transactions(), store.Clients(), store).
		WithClock(func() time.Time { return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC) })
	opts.Info = handlers.AppInfo{Name: "DimDimApp", Version: "test", Started: time.Now()}
	srv := httptest.NewServer(NewRouter(clients, transactions, store, opts))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestClientTransactionLifecycle(t *testing.T) {
	srv := newServer(t, Options{AllowedOrigins: []string{"*"}})

	var ana models.Client
	code := call(t, srv, http.MethodPost, "/api/clients", `{"name":"Ana","email":"ana@x.com","phone":"(11) 91234-5678"}`, &ana)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, int64(1), ana.ID)

	code = call(t, srv, http.MethodPost, "/api/clients", `{"name":"Ana B","email":"ana@x.com","phone":"(11) 91234-5678"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var txn map[string]any
	code = call(t, srv, http.MethodPost, "/api/transactions", `{"amount":100.0,"client_id":1}`, &txn)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "2024-05-10", txn["date"])

	var total map[string]float64
	code = call(t, srv, http.MethodGet, "/api/transactions/client/1/total", "", &total)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 100.0, total["total"])

	var inRange []models.Transaction
	code = call(t, srv, http.MethodGet, "/api/transactions/client/1/range?start=2024-05-01&end=2024-05-31", "", &inRange)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, inRange, 1)

	code = call(t, srv, http.MethodDelete, "/api/clients/1", "", nil)
	require.Equal(t, http.StatusNoContent, code)

	var left []models.Transaction
	code = call(t, srv, http.MethodGet, "/api/transactions/client/1", "", &left)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, left)

	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/clients/1", "", nil))
}

func TestDemoModeRejectsWrites(t *testing.T) {
	srv := newServer(t, Options{DemoMode: true})

	assert.Equal(t, http.StatusForbidden, call(t, srv, http.MethodPost, "/api/clients", `{"name":"Ana","email":"ana@x.com","phone":"(11) 91234-5678"}`, nil))

	var list []models.Client
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/clients", "", &list))
}

func TestWritesRequireTokenWhenSecretSet(t *testing.T) {
	srv := newServer(t, Options{JWTSecret: "s3cret"})

	assert.Equal(t, http.StatusUnauthorized, call(t, srv, http.MethodPost, "/api/clients", `{"name":"Ana","email":"ana@x.com","phone":"(11) 91234-5678"}`, nil))

	var count map[string]int64
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/clients/count", "", &count))
	assert.Equal(t, int64(0), count["count"])
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t, Options{})

	var health map[string]any
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health", "", &health))
	assert.Equal(t, "UP", health["status"])
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health/live", "", nil))

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}
