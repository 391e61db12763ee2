package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "smartdrive"

var labelNames = []string{"method", "operation", "status"}

// serverMetrics holds the request telemetry of one HTTPServer. Each server
// owns its registry so several servers can live in one process.
type serverMetrics struct {
	registry         *prometheus.Registry
	requestDurations *prometheus.HistogramVec
	requestBytes     *prometheus.CounterVec
	responseBytes    *prometheus.CounterVec
}

func newServerMetrics() *serverMetrics {
	m := &serverMetrics{
		registry: prometheus.NewRegistry(),
		requestDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent answering API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			labelNames,
		),
		requestBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "request_bytes_total",
				Help:      "Total volume of request payloads received in bytes.",
			},
			labelNames,
		),
		responseBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "response_bytes_total",
				Help:      "Total volume of response payloads emitted in bytes.",
			},
			labelNames,
		),
	}

	m.registry.MustRegister(
		m.requestDurations,
		m.requestBytes,
		m.responseBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *serverMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type readerDelegator struct {
	io.ReadCloser
	BytesRead int
}

func (r *readerDelegator) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	r.BytesRead += n
	return n, err
}

// instrument records duration and payload sizes of requests served by next
// under the given operation label.
func (m *serverMetrics) instrument(op string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start = time.Now()
			rd    = &readerDelegator{ReadCloser: r.Body}
			rc    = &responseRecorder{ResponseWriter: w}
		)

		r.Body = rd

		next.ServeHTTP(rc, r)

		status := rc.status
		if status == 0 {
			status = http.StatusOK
		}
		labels := prometheus.Labels{
			"method":    strings.ToLower(r.Method),
			"operation": op,
			"status":    strconv.Itoa(status),
		}

		m.requestDurations.With(labels).Observe(time.Since(start).Seconds())
		m.requestBytes.With(labels).Add(float64(rd.BytesRead))
		m.responseBytes.With(labels).Add(float64(rc.size))
	})
}
