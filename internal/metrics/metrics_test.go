package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentCountsByRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/catalog/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"one", "two"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/"+id, nil))
	}

	// Both requests must collapse into the pattern, not two path labels.
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/catalog/{id}", "200"))
	if got != 2 {
		t.Fatalf("counter = %v, want 2", got)
	}
}

func TestInstrumentRecordsStatusCode(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/missing", "404"))
	if got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // no explicit WriteHeader
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/implicit", nil))

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/implicit", "200"))
	if got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}
}

func TestMetricsEndpointServesExposition(t *testing.T) {
	Init() // registers with the default registry; only this test calls it

	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type = %q, want Prometheus text exposition", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatalf("exposition missing http_requests_total:\n%s", body)
	}
	if !strings.Contains(body, "http_in_flight_requests") {
		t.Fatal("exposition missing http_in_flight_requests")
	}
}
