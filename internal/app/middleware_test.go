package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLoggingPreservesStatus(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), log, false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"status":418`) {
		t.Fatalf("log missing status: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"path":"/teapot"`) {
		t.Fatalf("log missing path: %s", buf.String())
	}
}

func TestClientIPRespectsTrustProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	// Forwarded headers are ignored unless a proxy is trusted.
	if got := clientIP(req, false); got != "10.1.2.3" {
		t.Fatalf("untrusted clientIP = %q", got)
	}
	if got := clientIP(req, true); got != "203.0.113.9" {
		t.Fatalf("trusted clientIP = %q", got)
	}

	// Garbage forwarded values fall through to X-Real-IP, then the peer.
	req.Header.Set("X-Forwarded-For", "not-an-ip")
	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := clientIP(req, true); got != "198.51.100.7" {
		t.Fatalf("real-ip fallback = %q", got)
	}
	req.Header.Del("X-Real-IP")
	if got := clientIP(req, true); got != "10.1.2.3" {
		t.Fatalf("peer fallback = %q", got)
	}
}

func TestRequestLoggingUsesForwardedIPWhenTrusted(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), log, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"remote":"203.0.113.9"`) {
		t.Fatalf("log missing forwarded remote: %s", buf.String())
	}
}

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()

	h := m.Observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/anything", nil))
	}

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("scrape = %d", scrape.Code)
	}
	body, _ := io.ReadAll(scrape.Result().Body)
	if !strings.Contains(string(body), `taskflow_http_requests_total{method="DELETE",status="204"} 3`) {
		t.Fatalf("counter missing from scrape:\n%s", body)
	}
}
