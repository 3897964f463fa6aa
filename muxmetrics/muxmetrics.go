// Package muxmetrics instruments a mux.Router with Prometheus metrics.
//
//	m := muxmetrics.New(muxmetrics.WithNamespace("shop"))
//	r := mux.NewRouter()
//	r.Use(m.Middleware)
//	r.NotFoundHandler = m.NotFound(nil)
//
// Metrics collected:
//   - <ns>_requests_total: counter of dispatched requests by route
//   - <ns>_request_duration_seconds: histogram of handler duration by route
//   - <ns>_not_found_total: counter of requests no route matched
//
// The route label is the route name when set, else its pattern, so label
// cardinality is bounded by the size of the route table.
package muxmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitalvas/waypoint/mux"
)

// Config configures the metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "mux").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "mux",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the router metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	notFound prometheus.Counter
}

// New registers the router metrics and returns them. Registering twice on
// the same registry panics, as with promauto.
func New(opts ...Option) *Metrics {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of requests dispatched to a route",
			ConstLabels: cfg.ConstLabels,
		}, []string{"route"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Route handler duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"route"}),

		notFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "not_found_total",
			Help:        "Total number of requests no route matched",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Middleware counts and times requests per matched route. It has the
// mux.MiddlewareFunc signature and is meant for mux.Router.Use.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := routeLabel(mux.CurrentRoute(r))

		start := time.Now()
		next.ServeHTTP(w, r)

		m.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(label).Inc()
	})
}

// NotFound counts the request and calls next, or http.NotFound when next
// is nil. It is meant for mux.Router.NotFoundHandler.
func (m *Metrics) NotFound(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.notFound.Inc()
		next.ServeHTTP(w, r)
	})
}

func routeLabel(route *mux.Route) string {
	if route == nil {
		return ""
	}
	if name := route.GetName(); name != "" {
		return name
	}
	return route.GetPattern()
}
