// Package metrics exposes Prometheus collectors for terrain builds and
// the height service. Each run owns a private registry; batch builds dump
// it to a textfile and the server serves it on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "demterrain"

// Metrics is a set of collectors on one registry. A nil *Metrics
// discards every observation.
type Metrics struct {
	Registry *prometheus.Registry

	tileLoads      *prometheus.CounterVec
	pointsSampled  prometheus.Counter
	coverageGaps   prometheus.Counter
	faces          prometheus.Gauge
	blocks         prometheus.Gauge
	excludedBlocks prometheus.Gauge
	buildDuration  *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers a fresh set of collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		tileLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tile_loads_total",
				Help:      "Elevation tile payload loads by result.",
			},
			[]string{"result"},
		),
		pointsSampled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lattice_points_sampled_total",
			Help:      "Lattice points given an elevation.",
		}),
		coverageGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coverage_gaps_total",
			Help:      "Lattice points with no elevation.",
		}),
		faces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_faces",
			Help:      "Triangles in the last built mesh.",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obstruction_blocks",
			Help:      "Blocks in the last built obstruction grid.",
		}),
		excludedBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obstruction_blocks_excluded",
			Help:      "Blocks dropped by exclusion regions in the last build.",
		}),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Terrain build duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"output"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"path", "method", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}
	m.Registry.MustRegister(
		m.tileLoads, m.pointsSampled, m.coverageGaps,
		m.faces, m.blocks, m.excludedBlocks, m.buildDuration,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// TileLoaded counts one payload load attempt.
func (m *Metrics) TileLoaded(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.tileLoads.WithLabelValues(result).Inc()
}

// Sampled counts lattice points that received an elevation.
func (m *Metrics) Sampled(n int) {
	if m == nil {
		return
	}
	m.pointsSampled.Add(float64(n))
}

// Gaps counts uncovered lattice points.
func (m *Metrics) Gaps(n int) {
	if m == nil {
		return
	}
	m.coverageGaps.Add(float64(n))
}

// MeshBuilt records the size of a finished mesh.
func (m *Metrics) MeshBuilt(faces int, d time.Duration) {
	if m == nil {
		return
	}
	m.faces.Set(float64(faces))
	m.buildDuration.WithLabelValues("geom").Observe(d.Seconds())
}

// ObstructionsBuilt records the size of a finished obstruction grid.
func (m *Metrics) ObstructionsBuilt(blocks, excluded int, d time.Duration) {
	if m == nil {
		return
	}
	m.blocks.Set(float64(blocks))
	m.excludedBlocks.Set(float64(excluded))
	m.buildDuration.WithLabelValues("obst").Observe(d.Seconds())
}

// WriteTextfile writes the registry in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

// Handler returns the Prometheus metrics HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
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

// Middleware records request count and duration for each request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := normalizeRoute(r.URL.Path)
		m.httpRequests.WithLabelValues(path, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		m.httpDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

// normalizeRoute keeps the label set bounded: unknown paths share "other".
func normalizeRoute(path string) string {
	switch path {
	case "/height", "/tiles", "/health", "/metrics":
		return path
	}
	return "other"
}
