package app

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// WithRequestLogging wraps an http.Handler and logs requests. trustProxy
// controls whether forwarded-for headers may override the peer address.
func WithRequestLogging(next http.Handler, log *slog.Logger, trustProxy bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(lrw, r)

		log.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"bytes", lrw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", clientIP(r, trustProxy),
			"user_agent", r.UserAgent(),
		)
	})
}

// clientIP resolves the peer address for logging. Forwarded headers are
// attacker-controlled, so they only count when a trusted proxy sits in
// front of the server.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := firstForwardedIP(r.Header.Get("X-Forwarded-For")); ip != "" {
			return ip
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// firstForwardedIP returns the first valid address in an X-Forwarded-For
// list, which is the original client when every hop appends honestly.
func firstForwardedIP(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		ip := strings.TrimSpace(part)
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return ""
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingResponseWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *loggingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *loggingResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
