// Package metrics exposes Prometheus metrics for analyses, advisory calls and
// HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/analysis"
)

const defaultNamespace = "skillmatch"

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace overrides the metric namespace.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithRegistry registers the metrics on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithBuckets sets the latency histogram buckets, in seconds.
func WithBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// Recorder implements analysis.Observer on top of a Prometheus registry.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	analyses         prometheus.Counter
	analysisDuration prometheus.Histogram
	matchScore       prometheus.Histogram

	advisoryRequests *prometheus.CounterVec
	advisoryDuration *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
}

var _ analysis.Observer = (*Recorder)(nil)

// New creates a Recorder. Without WithRegistry the metrics live on a fresh
// registry so several recorders never collide.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(r.registry)

	r.analyses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "analyses_total",
		Help:      "Total number of completed deterministic analyses",
	})

	r.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent extracting, matching and scoring",
		Buckets:   r.buckets,
	})

	r.matchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "match_score",
		Help:      "Distribution of match scores",
		Buckets:   scoreBuckets,
	})

	r.advisoryRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "advisory_requests_total",
		Help:      "Total number of advisory requests by outcome",
	}, []string{"outcome"})

	r.advisoryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "advisory_duration_seconds",
		Help:      "Advisory call latency by outcome",
		Buckets:   r.buckets,
	}, []string{"outcome"})

	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	return r
}

// ObserveAnalysis records one finished analysis.
func (r *Recorder) ObserveAnalysis(elapsed time.Duration, res *analysis.Result) {
	r.analyses.Inc()
	r.analysisDuration.Observe(elapsed.Seconds())
	if res != nil {
		r.matchScore.Observe(float64(res.MatchScore))
	}
}

// ObserveAdvisory records one advisory call.
func (r *Recorder) ObserveAdvisory(outcome ai.Outcome, elapsed time.Duration) {
	r.advisoryRequests.WithLabelValues(string(outcome)).Inc()
	r.advisoryDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served HTTP request.
func (r *Recorder) ObserveHTTP(route, method string, status int) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
