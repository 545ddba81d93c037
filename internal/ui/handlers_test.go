package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/querypad/internal/store"
	"github.com/leapstack-labs/querypad/pkg/playground"
)

const testBaseURL = "https://querypad.dev/"

func setupTestRouter(t *testing.T) chi.Router {
	t.Helper()

	docs := store.NewSQLiteStore()
	require.NoError(t, docs.Open(":memory:"))
	require.NoError(t, docs.InitSchema())
	t.Cleanup(func() { _ = docs.Close() })

	logger := slog.New(slog.DiscardHandler)
	registry, err := store.Associate(docs, t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if p, err := registry.Get(playground.ProviderFile); err == nil {
			_ = p.(*store.FileProvider).Close()
		}
	})

	manager := store.NewManager(registry, logger)
	sessionStore := sessions.NewCookieStore([]byte("test-secret"))

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, manager, registry, sessionStore, testBaseURL, logger))
	return r
}

func postShare(t *testing.T, router chi.Router, body map[string]any) ShareResponse {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/shares", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func getItem(t *testing.T, router chi.Router, provider, value string) playground.StoreItem {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/shares/%s/%s", provider, value), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var item playground.StoreItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	return item
}

func TestCreateAndGetShare_RoundTrip(t *testing.T) {
	router := setupTestRouter(t)

	for _, provider := range []string{"url", "document", "file"} {
		t.Run(provider, func(t *testing.T) {
			resp := postShare(t, router, map[string]any{
				"provider":      provider,
				"kyselyVersion": "0.42.1",
				"dialect":       "sqlite",
				"ts":            "select 1",
			})

			assert.Equal(t, provider, resp.Provider)
			assert.NotEmpty(t, resp.Value)
			assert.Contains(t, resp.URL, "#"+provider+":")

			item := getItem(t, router, resp.Provider, resp.Value)
			assert.Equal(t, playground.DialectSQLite, item.Dialect)
			assert.Equal(t, "0.42.1", item.KyselyVersion)
			assert.Equal(t, "select 1", item.QueryTS)
		})
	}
}

func TestCreateShare_MalformedStateDegradesToDefaults(t *testing.T) {
	router := setupTestRouter(t)

	resp := postShare(t, router, map[string]any{
		"provider": "url",
		"dialect":  "not-a-real-dialect",
		"ts":       12345,
	})

	item := getItem(t, router, resp.Provider, resp.Value)
	def := playground.DefaultSharedState()
	assert.Equal(t, def.Dialect, item.Dialect)
	assert.Equal(t, def.KyselyVersion, item.KyselyVersion)
	assert.Equal(t, def.TS, item.QueryTS)
}

func TestCreateShare_BadRequests(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "not JSON", body: "select 1", wantStatus: http.StatusBadRequest},
		{name: "unknown provider", body: `{"provider":"carrier-pigeon"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/shares", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetShare_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown provider", path: "/api/shares/bogus/value"},
		{name: "missing document", path: "/api/shares/document/ffffffff-ffff-ffff-ffff-ffffffffffff"},
		{name: "malformed url value", path: "/api/shares/url/!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestResolveShare_RedirectsWithFragment(t *testing.T) {
	router := setupTestRouter(t)

	resp := postShare(t, router, map[string]any{
		"provider": "document",
		"ts":       "select 'redirect me'",
	})

	req := httptest.NewRequest(http.MethodGet, "/s/document/"+resp.Value, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, resp.URL, rec.Header().Get("Location"))
}

func TestResolveShare_UnknownProvider(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/s/bogus/whatever", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentShares_TrackedAcrossRequests(t *testing.T) {
	router := setupTestRouter(t)

	// Create a share and keep the session cookie it sets.
	payload, err := json.Marshal(map[string]any{"provider": "url", "ts": "select 1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/shares", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The follow-up request carries the cookie and sees the link.
	req = httptest.NewRequest(http.MethodGet, "/api/recent", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var recent RecentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	assert.Equal(t, []string{created.URL}, recent.Shares)
}

func TestRecentShares_EmptySession(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/recent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var recent RecentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	assert.Empty(t, recent.Shares)
}

func TestMeta(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta MetaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, []string{"postgres", "mysql", "sqlite", "mssql"}, meta.Dialects)
	assert.Equal(t, []string{"url", "document", "file"}, meta.Providers)
	assert.Contains(t, meta.Versions, meta.LatestVersion)
}
