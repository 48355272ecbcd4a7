package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/render"
)

const testGDP = "\"Country Name\",\"Country Code\",\"1960\",\"1980\"\n" +
	"\"Afghanistan\",\"AFG\",\"59.78\",\"3.64\"\n" +
	"\"Chad\",\"TCD\",\"\",\"1.03\"\n"

var testCodes = core.CodeNameMap{
	"af": "Afghanistan",
	"td": "Chad",
	"xx": "Atlantis",
}

// memoryStore is a HistoryStore kept in memory.
type memoryStore struct {
	core.NopHistoryStore
	mu      sync.Mutex
	records []core.RenderRecord
}

func (m *memoryStore) Record(_ context.Context, rec *core.RenderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = "rec-" + rec.Year
	rec.CreatedAt = time.Now()
	m.records = append(m.records, *rec)
	return nil
}

func (m *memoryStore) Recent(_ context.Context, limit int) ([]core.RenderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return append([]core.RenderRecord(nil), m.records[:limit]...), nil
}

type testEnv struct {
	server  *Server
	cfg     *config.Config
	limiter *core.RenderLimiter
}

func newTestServer(t *testing.T, gdp string, history core.HistoryStore, mutate func(*config.Config)) *testEnv {
	t.Helper()

	dir := t.TempDir()
	info := config.DefaultGDPInfo()
	info.GDPFile = filepath.Join(dir, "isp_gdp.csv")
	if err := os.WriteFile(info.GDPFile, []byte(gdp), 0o644); err != nil {
		t.Fatalf("write gdp file: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Render: config.RenderConfig{OutputDir: t.TempDir(), MaxConcurrent: 2, MaxWait: time.Second},
	}
	if mutate != nil {
		mutate(cfg)
	}

	limiter := core.NewRenderLimiter(cfg.Render.MaxConcurrent, cfg.Render.MaxWait)
	svc := core.NewService(render.NewSVGRenderer(), history)
	srv := NewServer(svc, cfg, info, testCodes, limiter)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	return &testEnv{server: srv, cfg: cfg, limiter: limiter}
}

func (e *testEnv) do(method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	if resp.Message == "" {
		t.Error("error response should carry a message")
	}
}

func TestHealth(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp healthResponse
	decode(t, rec, &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.History {
		t.Error("history = true, want false without a store")
	}
	if resp.Renders.MaxConcurrent != 2 || resp.Renders.Available != 2 {
		t.Errorf("renders = %+v, want 2 of 2 available", resp.Renders)
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/healthz", nil)
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestCountries(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/api/countries", nil)
	var got map[string]string
	decode(t, rec, &got)

	if len(got) != len(testCodes) || got["td"] != "Chad" {
		t.Errorf("countries = %v, want %v", got, testCodes)
	}
}

func TestReconcile(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/api/reconcile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp reconcileResponse
	decode(t, rec, &resp)
	if len(resp.Matched) != 2 {
		t.Errorf("matched = %v, want af and td", resp.Matched)
	}
	if len(resp.Unmatched) != 1 || resp.Unmatched[0] != "xx" {
		t.Errorf("unmatched = %v, want [xx]", resp.Unmatched)
	}
}

func TestResolve(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/api/resolve/1960", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp resolveResponse
	decode(t, rec, &resp)
	if _, ok := resp.Values["af"]; !ok || len(resp.Values) != 1 {
		t.Errorf("values = %v, want only af", resp.Values)
	}
	if strings.Join(resp.NotFound, ",") != "xx" {
		t.Errorf("notFound = %v, want [xx]", resp.NotFound)
	}
	if strings.Join(resp.NoData, ",") != "td" {
		t.Errorf("noData = %v, want [td]", resp.NoData)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.Title != core.MapTitle("1960") {
		t.Errorf("title = %q", resp.Title)
	}
}

func TestResolve_InvalidYear(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/api/resolve/19x0", nil)
	expectError(t, rec, http.StatusBadRequest, "CFG002")
}

func TestMap(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/map/1960.svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"<svg", core.MapTitle("1960"), core.SeriesNotFound, core.SeriesNoData} {
		if !strings.Contains(body, want) {
			t.Errorf("map body missing %q", want)
		}
	}
	if env.limiter.Active() != 0 {
		t.Errorf("limiter active = %d after request, want 0", env.limiter.Active())
	}
}

func TestMap_ParseErrorIsJSON(t *testing.T) {
	env := newTestServer(t, "Country Name,1960\nChad,abc\n", nil, nil)

	rec := env.do(http.MethodGet, "/map/1960.svg", nil)
	expectError(t, rec, http.StatusInternalServerError, "GDP003")
}

func TestMap_MissingFile(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)
	os.Remove(env.server.info.GDPFile)

	rec := env.do(http.MethodGet, "/map/1960.svg", nil)
	expectError(t, rec, http.StatusInternalServerError, "GDP001")
}

func TestMap_Busy(t *testing.T) {
	env := newTestServer(t, testGDP, nil, func(c *config.Config) {
		c.Render.MaxConcurrent = 1
		c.Render.MaxWait = 10 * time.Millisecond
	})

	if err := env.limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer env.limiter.Release()

	rec := env.do(http.MethodGet, "/map/1960.svg", nil)
	expectError(t, rec, http.StatusServiceUnavailable, "RND002")
	if rec.Header().Get("Retry-After") == "" {
		t.Error("503 should set Retry-After")
	}
}

func TestRender(t *testing.T) {
	store := &memoryStore{}
	env := newTestServer(t, testGDP, store, nil)

	rec := env.do(http.MethodPost, "/api/render/1980", http.Header{"User-Agent": {"gdpmap-test"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var got core.RenderRecord
	decode(t, rec, &got)
	if got.Year != "1980" || got.Matched != 2 || got.NotFound != 1 {
		t.Errorf("record = %+v, want year 1980 with 2 matched and 1 not found", got)
	}
	if got.ClientIP != "192.0.2.1" {
		t.Errorf("clientIP = %q, want 192.0.2.1", got.ClientIP)
	}
	if got.UserAgent != "gdpmap-test" {
		t.Errorf("userAgent = %q, want gdpmap-test", got.UserAgent)
	}

	want := filepath.Join(env.cfg.Render.OutputDir, "isp_gdp_world_name_1980.svg")
	if got.OutputPath != want {
		t.Errorf("outputPath = %q, want %q", got.OutputPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read rendered map: %v", err)
	}
	if !strings.Contains(string(data), core.SeriesValues("1980")) {
		t.Error("rendered map should contain the values series label")
	}

	hist := env.do(http.MethodGet, "/api/history?limit=10", nil)
	var recs []core.RenderRecord
	decode(t, hist, &recs)
	if len(recs) != 1 || recs[0].ID != "rec-1980" {
		t.Errorf("history = %+v, want the one render", recs)
	}
}

func TestRender_APIKey(t *testing.T) {
	env := newTestServer(t, testGDP, nil, func(c *config.Config) {
		c.Security = config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	})

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"missing", nil, http.StatusUnauthorized},
		{"wrong", http.Header{"X-Api-Key": {"nope"}}, http.StatusForbidden},
		{"header", http.Header{"X-Api-Key": {"secret"}}, http.StatusCreated},
		{"bearer", http.Header{"Authorization": {"Bearer secret"}}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/render/1960", tt.header)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRender_InvalidYearWritesNothing(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodPost, "/api/render/..%2F1960", nil)
	if rec.Code == http.StatusCreated {
		t.Fatal("render with a path in the year should fail")
	}

	entries, _ := os.ReadDir(env.cfg.Render.OutputDir)
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries, want 0", len(entries))
	}
}

func TestHistory_NotConfigured(t *testing.T) {
	env := newTestServer(t, testGDP, nil, nil)

	rec := env.do(http.MethodGet, "/api/history", nil)
	expectError(t, rec, http.StatusServiceUnavailable, "DB002")
}

func TestHistory_Empty(t *testing.T) {
	env := newTestServer(t, testGDP, &memoryStore{}, nil)

	rec := env.do(http.MethodGet, "/api/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestServer(t, testGDP, nil, func(c *config.Config) {
		c.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2, RenderLimit: 1}
	})

	for i := 0; i < 2; i++ {
		if rec := env.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := env.do(http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(2, time.Hour)
	defer rl.stop()

	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.1") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Error("third request should be limited")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other clients have their own budget")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := newRateLimiter(1, 20*time.Millisecond)
	defer rl.stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be limited")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("request after the window should be allowed")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	rl.stop()
	rl.stop()
}
