package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for the service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	OrdersPlaced    prometheus.Counter
	OrdersCancelled prometheus.Counter
	StockRejections prometheus.Counter
}

// MustNewMetrics registers and returns the service collectors.
func MustNewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quickjuice",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quickjuice",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quickjuice",
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})

	ordersCancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quickjuice",
		Name:      "orders_cancelled_total",
		Help:      "Total number of cancelled orders.",
	})

	stockRejections := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quickjuice",
		Name:      "stock_rejections_total",
		Help:      "Total number of placements rejected for insufficient stock.",
	})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		ordersPlaced,
		ordersCancelled,
		stockRejections,
	)

	return &Metrics{
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
		OrdersPlaced:    ordersPlaced,
		OrdersCancelled: ordersCancelled,
		StockRejections: stockRejections,
	}
}

// Handler returns the /metrics scrape handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per method.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.HTTPDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
