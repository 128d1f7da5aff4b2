package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"pdfquery/internal/config"
	"pdfquery/internal/corpus"
	"pdfquery/internal/models"
	"pdfquery/internal/query"
	"pdfquery/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		ServerAddr:     ":0",
		CORSOrigins:    "*",
		RateLimitMax:   0,
		MetricsEnabled: true,
		MaxQueryLength: 100,
	}
}

func newTestServer(cfg *config.Config) *Server {
	docs := corpus.New(testutil.SampleDocuments())
	s := New(cfg)
	s.RegisterRoutes(docs, query.NewMatcher(nil))
	return s
}

func doGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("GET %s failed: %v", target, err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Error
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(testConfig())

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/query?q=authentication+OR+disk", http.StatusOK},
		{"/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := doGet(t, s.App, tt.path)
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("GET %s status = %d, want %d: %s", tt.path, resp.StatusCode, tt.status, body)
			}
		})
	}
}

func TestServer_RequestID(t *testing.T) {
	s := newTestServer(testConfig())

	resp := doGet(t, s.App, "/health")
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response has no X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID = %q, want the caller's id", got)
	}
}

func TestServer_ErrorHandlerRendersJSON(t *testing.T) {
	s := newTestServer(testConfig())
	s.App.Get("/boom", func(c fiber.Ctx) error {
		panic("boom")
	})
	s.App.Get("/teapot", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"unknown route", "/nope", http.StatusNotFound, fiber.ErrNotFound.Message},
		{"recovered panic", "/boom", http.StatusInternalServerError, "Internal Server Error"},
		{"fiber error", "/teapot", http.StatusTeapot, "short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doGet(t, s.App, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
				t.Errorf("Content-Type = %q, want JSON", resp.Header.Get("Content-Type"))
			}
			if msg := decodeError(t, resp); msg != tt.message {
				t.Errorf("error = %q, want %q", msg, tt.message)
			}
		})
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(cfg)

	for i := 0; i < 2; i++ {
		resp := doGet(t, s.App, "/health")
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	resp := doGet(t, s.App, "/health")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", resp.StatusCode)
	}
	if msg := decodeError(t, resp); !strings.HasPrefix(msg, "Rate limit exceeded") {
		t.Errorf("error = %q", msg)
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	s := newTestServer(cfg)

	resp := doGet(t, s.App, "/metrics")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404 when disabled", resp.StatusCode)
	}
}
