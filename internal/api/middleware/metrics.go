// metrics.go — Prometheus HTTP метрики API Module.
// Регистрирует метрики: bp_http_requests_total, bp_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bp_http_requests_total",
			Help: "Общее количество HTTP-запросов к API Module",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bp_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к API Module в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем UUID на {id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath заменяет UUID-сегменты пути на {id} для предотвращения
// взрывного роста кардинальности метрик.
// /api/v1/messages/a1b2c3d4-... → /api/v1/messages/{id}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/.well-known/jwks.json",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/profile",
		"/api/v1/messages",
		"/api/v1/messages/archive",
		"/api/v1/notifications",
		"/api/v1/notifications/read",
		"/api/v1/property-groups",
		"/api/v1/devices",
		"/api/v1/files",
		"/api/v1/admin/users":
		return path
	}

	// Динамические пути с UUID или типом выборки
	prefixes := []struct {
		prefix string
		result string
	}{
		{"/api/v1/directories/", "/api/v1/directories/{type}"},
		{"/api/v1/directory/", "/api/v1/directory/{id}"},
		{"/api/v1/property-groups/", "/api/v1/property-groups/{id}"},
		{"/api/v1/files/", "/api/v1/files/{id}"},
		{"/api/v1/devices/", "/api/v1/devices/{token}"},
		{"/api/v1/admin/users/", "/api/v1/admin/users/{id}"},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(path, p.prefix) && len(path) > len(p.prefix) {
			rest := path[len(p.prefix):]
			if idx := strings.IndexByte(rest, '/'); idx != -1 {
				switch rest[idx:] {
				case "/role":
					return p.result + "/role"
				case "/status":
					return p.result + "/status"
				default:
					return p.result
				}
			}
			return p.result
		}
	}

	return path
}
