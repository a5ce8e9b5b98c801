package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordHTTPStatus(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("http status 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("http status 404 count = %v, want 1", got)
	}
}

func TestCollector_RecordLogin(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordLogin("google")
	c.RecordLogin("github")
	c.RecordLogin("google")
	c.RecordLogin("credentials")

	if got := testutil.ToFloat64(c.logins.WithLabelValues("google")); got != 2 {
		t.Errorf("google login count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.logins.WithLabelValues("github")); got != 1 {
		t.Errorf("github login count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.logins.WithLabelValues("credentials")); got != 1 {
		t.Errorf("credentials login count = %v, want 1", got)
	}
}

func TestCollector_RecordNoteCreatedAndWithdrawal(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordNoteCreated()
	c.RecordNoteCreated()
	c.RecordWithdrawal()

	if got := testutil.ToFloat64(c.notesCreated); got != 2 {
		t.Errorf("notes created count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.withdrawals); got != 1 {
		t.Errorf("withdrawal count = %v, want 1", got)
	}
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)
	c.RecordNoteCreated()

	h := Handler(registry)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "memopad_notes_created_total 1") {
		t.Errorf("expected memopad_notes_created_total in exposition:\n%s", body)
	}
}
