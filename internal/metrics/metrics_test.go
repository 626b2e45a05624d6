package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/height", "/height"},
		{"/tiles", "/tiles"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/", "other"},
		{"/wp-admin", "other"},
		{"/height/extra", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizeRoute(tt.path); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestMetrics_Observations(t *testing.T) {
	m := New()
	m.TileLoaded(nil)
	m.TileLoaded(nil)
	m.TileLoaded(errors.New("boom"))
	m.Sampled(9)
	m.Gaps(2)
	m.MeshBuilt(8, time.Millisecond)
	m.ObstructionsBuilt(4, 1, time.Millisecond)

	if got := testutil.ToFloat64(m.tileLoads.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.tileLoads.WithLabelValues("error")); got != 1 {
		t.Errorf("failed loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.pointsSampled); got != 9 {
		t.Errorf("sampled = %v, want 9", got)
	}
	if got := testutil.ToFloat64(m.faces); got != 8 {
		t.Errorf("faces = %v, want 8", got)
	}
	if got := testutil.ToFloat64(m.excludedBlocks); got != 1 {
		t.Errorf("excluded = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.TileLoaded(nil)
	m.Sampled(1)
	m.Gaps(1)
	m.MeshBuilt(1, time.Second)
	m.ObstructionsBuilt(1, 1, time.Second)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.Gaps(3)
	path := filepath.Join(t.TempDir(), "demterrain.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "demterrain_coverage_gaps_total 3") {
		t.Errorf("textfile missing gap counter:\n%s", raw)
	}
}

func TestMetrics_Middleware(t *testing.T) {
	m := New()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/height" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("{}"))
	}))
	for _, p := range []string{"/height", "/height", "/nope"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/height", "GET", "200")); got != 2 {
		t.Errorf("height requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("other", "GET", "404")); got != 1 {
		t.Errorf("other requests = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "demterrain_http_requests_total") {
		t.Error("/metrics does not expose request counter")
	}
}
