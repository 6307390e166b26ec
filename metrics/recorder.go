// Package metrics exports frame, spring and chat metrics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/furry-motion/runtime"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithFrameBuckets sets the frame duration histogram buckets, in seconds.
func WithFrameBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.frameBuckets = buckets
		}
	}
}

// Recorder observes render passes and chat replies.
type Recorder struct {
	namespace    string
	registry     *prometheus.Registry
	frameBuckets []float64

	frames        prometheus.Counter
	fullRedraws   prometheus.Counter
	frameDuration prometheus.Histogram
	flushDuration prometheus.Histogram
	dirtyCells    prometheus.Histogram
	activeSprings prometheus.Gauge
	chatReplies   *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry unless one is given.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:    "furry",
		frameBuckets: []float64{.001, .002, .004, .008, .016, .033, .066, .1},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(r.registry)
	r.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "render",
		Name:      "frames_total",
		Help:      "Render passes completed.",
	})
	r.fullRedraws = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "render",
		Name:      "full_redraws_total",
		Help:      "Render passes that rewrote more than half of the screen.",
	})
	r.frameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "render",
		Name:      "frame_seconds",
		Help:      "Time from render start to backend show.",
		Buckets:   r.frameBuckets,
	})
	r.flushDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "render",
		Name:      "flush_seconds",
		Help:      "Time spent writing dirty cells to the backend.",
		Buckets:   r.frameBuckets,
	})
	r.dirtyCells = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "render",
		Name:      "dirty_cells",
		Help:      "Cells changed per render pass.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
	r.activeSprings = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "motion",
		Name:      "active_springs",
		Help:      "Springs still moving after the last frame.",
	})
	r.chatReplies = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "chat",
		Name:      "replies_total",
		Help:      "Chat replies by outcome.",
	}, []string{"outcome"})
	return r
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRender implements runtime.RenderObserver.
func (r *Recorder) ObserveRender(stats runtime.RenderStats) {
	r.frames.Inc()
	if stats.FullRedraw {
		r.fullRedraws.Inc()
	}
	r.frameDuration.Observe(stats.TotalDuration.Seconds())
	r.flushDuration.Observe(stats.FlushDuration.Seconds())
	r.dirtyCells.Observe(float64(stats.DirtyCells))
	r.activeSprings.Set(float64(stats.Animating))
}

// ObserveChat counts a chat reply. It implements chat.Observer.
func (r *Recorder) ObserveChat(fallback bool) {
	outcome := "ok"
	if fallback {
		outcome = "fallback"
	}
	r.chatReplies.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

var _ runtime.RenderObserver = (*Recorder)(nil)
