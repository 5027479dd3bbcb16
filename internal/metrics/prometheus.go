package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	chatExchanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_exchanges_total",
			Help: "Total number of completed chat exchanges",
		},
	)

	symptomUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "symptom_updates_total",
			Help: "Total number of profile updates triggered by symptom keywords",
		},
	)

	llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Language model request duration in seconds",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	speechRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_requests_total",
			Help: "Total number of speech requests",
		},
		[]string{"operation", "outcome"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses per-user routes so user identifiers do not blow
// up label cardinality.
func normalizePath(path string) string {
	for _, prefix := range []string{"/chat-history/", "/patient-data/", "/patient-summary/"} {
		if len(path) > len(prefix) && path[:len(prefix)] == prefix {
			return prefix + "{user_id}"
		}
	}
	return path
}

// RecordChatExchange records one completed consultation exchange.
func RecordChatExchange() {
	chatExchanges.Inc()
}

// RecordSymptomUpdate records a profile write caused by the symptom scan.
func RecordSymptomUpdate() {
	symptomUpdates.Inc()
}

// RecordLLMRequest records a language-model call.
func RecordLLMRequest(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	llmRequestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordSpeechRequest records a TTS or STT call.
func RecordSpeechRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	speechRequests.WithLabelValues(operation, outcome).Inc()
}
