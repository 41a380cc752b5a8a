// internal/api/server_test.go
package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/newthinker/cryptofolio/internal/metrics"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newDeps(t *testing.T) Dependencies {
	t.Helper()
	p, err := portfolio.New(market.Default(), portfolio.DefaultSeed())
	if err != nil {
		t.Fatalf("failed to create portfolio: %v", err)
	}
	return Dependencies{Portfolio: p}
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServer_RequiresPortfolio(t *testing.T) {
	if _, err := NewServer(Config{Port: 0}, Dependencies{}, zap.NewNop()); err == nil {
		t.Error("expected error without portfolio")
	}
}

func TestServer_Health(t *testing.T) {
	srv, err := NewServer(Config{
		Host: "localhost",
		Port: 0,
	}, newDeps(t), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	w := serve(srv, httptest.NewRequest("GET", "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(metrics.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestServer_PortfolioPage(t *testing.T) {
	srv, _ := NewServer(Config{Host: "localhost"}, newDeps(t), zap.NewNop())

	w := serve(srv, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "$47.706,82") {
		t.Error("expected total value on page")
	}
}

func TestServer_UnknownPath(t *testing.T) {
	srv, _ := NewServer(Config{Host: "localhost"}, newDeps(t), zap.NewNop())

	w := serve(srv, httptest.NewRequest("GET", "/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestServer_WebAddAndRemove(t *testing.T) {
	deps := newDeps(t)
	srv, _ := NewServer(Config{Host: "localhost"}, deps, zap.NewNop())

	req := httptest.NewRequest("POST", "/assets", strings.NewReader("asset=polkadot&amount=10"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(srv, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if deps.Portfolio.Len() != 4 {
		t.Errorf("expected 4 holdings, got %d", deps.Portfolio.Len())
	}

	w = serve(srv, httptest.NewRequest("POST", "/assets/polkadot/delete", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if deps.Portfolio.Len() != 3 {
		t.Errorf("expected 3 holdings, got %d", deps.Portfolio.Len())
	}
}

func TestServer_APIAuth_Required(t *testing.T) {
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "test-key",
	}, newDeps(t), zap.NewNop())

	// Without API key
	w := serve(srv, httptest.NewRequest("GET", "/api/v1/portfolio", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	// Health stays open
	w = serve(srv, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for health, got %d", w.Code)
	}
}

func TestServer_APIAuth_ValidKey(t *testing.T) {
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "test-key",
	}, newDeps(t), zap.NewNop())

	// With API key
	req := httptest.NewRequest("GET", "/api/v1/portfolio", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(srv, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", w.Code)
	}
}

func TestServer_APIAuth_Disabled(t *testing.T) {
	// Empty APIKey = disabled auth
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "",
	}, newDeps(t), zap.NewNop())

	w := serve(srv, httptest.NewRequest("GET", "/api/v1/market", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with disabled auth, got %d", w.Code)
	}
}

func TestServer_Metrics(t *testing.T) {
	deps := newDeps(t)
	deps.Metrics = metrics.NewRegistry()

	srv, err := NewServer(Config{
		Host:           "localhost",
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	defer srv.stopTrack()

	req := httptest.NewRequest("POST", "/api/v1/portfolio/assets", strings.NewReader(`{"asset_id":"bitcoin","amount":"abc"}`))
	w := serve(srv, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = serve(srv, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		"cryptofolio_holdings 3",
		`cryptofolio_add_rejected_total{code="INVALID_AMOUNT"} 1`,
		`http_requests_total{method="POST",path="POST /api/v1/portfolio/assets",status="4xx"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}

	if err := testutil.GatherAndCompare(deps.Metrics, strings.NewReader(`
# HELP cryptofolio_holdings Number of assets held in the portfolio
# TYPE cryptofolio_holdings gauge
cryptofolio_holdings 3
`), "cryptofolio_holdings"); err != nil {
		t.Errorf("unexpected holdings gauge: %v", err)
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv, _ := NewServer(Config{Host: "localhost"}, newDeps(t), zap.NewNop())

	w := serve(srv, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
