package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// testEnvelope mirrors the response wrapper for decoding.
type testEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testLimits(login, write int) config.RateLimits {
	return config.RateLimits{LoginRatePerMin: &login, WriteRatePerMin: &write}
}

func newTestServer(t *testing.T, limits config.RateLimits) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Admin:      config.AdminConfig{Username: "admin", PasswordHash: string(hash)},
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		RateLimits: limits,
	}
	srv := httptest.NewServer(New(Options{
		Categories: catalog.NewCategoryService(filepath.Join(dir, "categories.json")),
		Streams:    catalog.NewStreamService(filepath.Join(dir, "streams.json")),
		Cfg:        cfg,
		Version:    "test",
	}))
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/admin/login", "application/json",
		strings.NewReader(`{"username": "admin", "password": "secret123"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Token == "" {
		t.Fatal("empty token")
	}
	return data.Token
}

func adminForm(t *testing.T, srv *httptest.Server, token, method, path string, form url.Values) *testEnvelope {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, srv.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != env.Code {
		t.Errorf("HTTP status %d does not mirror envelope code %d", resp.StatusCode, env.Code)
	}
	return &env
}

func TestAdminFlow(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	token := login(t, srv)

	// Add a category via form post.
	env := adminForm(t, srv, token, "POST", "/api/admin/categories", url.Values{"name": {"央视"}})
	if env.Code != http.StatusOK {
		t.Fatalf("add category: %+v", env)
	}

	// Add a stream into it.
	env = adminForm(t, srv, token, "POST", "/api/admin/streams", url.Values{
		"category_id": {"1"},
		"name":        {"CCTV-1"},
		"url":         {"http://example.com/cctv1.m3u8"},
	})
	if env.Code != http.StatusOK {
		t.Fatalf("add stream: %+v", env)
	}

	// Public read API sees the stream with the joined category name.
	resp, err := http.Get(srv.URL + "/api/streams")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var read testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&read); err != nil {
		t.Fatal(err)
	}
	var streams []struct {
		Name         string `json:"name"`
		CategoryName string `json:"category_name"`
	}
	if err := json.Unmarshal(read.Data, &streams); err != nil {
		t.Fatal(err)
	}
	if len(streams) != 1 || streams[0].Name != "CCTV-1" || streams[0].CategoryName != "央视" {
		t.Fatalf("read api: %+v", streams)
	}

	// Delete the stream.
	env = adminForm(t, srv, token, "DELETE", "/api/admin/streams?delete=1", nil)
	if env.Code != http.StatusOK {
		t.Fatalf("delete stream: %+v", env)
	}
	env = adminForm(t, srv, token, "DELETE", "/api/admin/streams?delete=1", nil)
	if env.Code != http.StatusNotFound {
		t.Fatalf("double delete: %+v", env)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong scheme", "Basic abc"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", srv.URL+"/api/admin/categories", strings.NewReader("name=x"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tc.token != "" {
				req.Header.Set("Authorization", tc.token)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	other := newTestServer(t, config.DefaultRateLimits())
	token := login(t, other)

	env := adminForm(t, srv, token, "POST", "/api/admin/categories", url.Values{"name": {"x"}})
	if env.Code != http.StatusUnauthorized {
		t.Fatalf("foreign token accepted: %+v", env)
	}
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t, testLimits(2, 60))

	last := 0
	for range 5 {
		resp, err := http.Post(srv.URL+"/api/admin/login", "application/json",
			strings.NewReader(`{"username": "admin", "password": "wrong"}`))
		if err != nil {
			t.Fatal(err)
		}
		last = resp.StatusCode
		resp.Body.Close()
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", last)
	}
}

func TestWrongLoginIs401(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	resp, err := http.Post(srv.URL+"/api/admin/login", "application/json",
		strings.NewReader(`{"username": "admin", "password": "nope"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())

	req, _ := http.NewRequest("OPTIONS", srv.URL+"/api/streams", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestQueryParamBinding(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	token := login(t, srv)

	adminForm(t, srv, token, "POST", "/api/admin/categories", url.Values{"name": {"央视"}})
	adminForm(t, srv, token, "POST", "/api/admin/streams", url.Values{
		"category_id": {"1"}, "name": {"CCTV-1"}, "url": {"http://x"},
	})

	// Unparseable id falls back to the full listing rather than erroring.
	resp, err := http.Get(srv.URL + "/api/streams?id=abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("garbage id should fall back to listing, got %d", resp.StatusCode)
	}

	// Valid id selects the single stream.
	resp2, err := http.Get(srv.URL + "/api/streams?id=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var env testEnvelope
	if err := json.NewDecoder(resp2.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	var stream struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &stream); err != nil {
		t.Fatal(err)
	}
	if stream.Name != "CCTV-1" {
		t.Errorf("stream = %+v", stream)
	}
}

func TestSortEndpoint(t *testing.T) {
	srv := newTestServer(t, config.DefaultRateLimits())
	token := login(t, srv)

	adminForm(t, srv, token, "POST", "/api/admin/categories", url.Values{"name": {"a"}})
	adminForm(t, srv, token, "POST", "/api/admin/categories", url.Values{"name": {"b"}})

	req, _ := http.NewRequest("POST", srv.URL+"/api/admin/sort",
		strings.NewReader(`{"type": "category", "items": [2, 1]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sort status = %d", resp.StatusCode)
	}

	// Categories now list b before a.
	resp2, err := http.Get(srv.URL + "/api/streams?type=categories")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var env testEnvelope
	if err := json.NewDecoder(resp2.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	var categories []struct {
		Name string `json:"name"`
		Sort int    `json:"sort"`
	}
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 || categories[0].Name != "b" || categories[1].Name != "a" {
		t.Fatalf("order after sort: %+v", categories)
	}
}
