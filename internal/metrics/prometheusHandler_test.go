package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHttpStatusRecorder_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: rr, Status: http.StatusOK}

	rec.WriteHeader(http.StatusTeapot)

	if rec.Status != http.StatusTeapot {
		t.Errorf("recorded status = %d, want %d", rec.Status, http.StatusTeapot)
	}
	if rr.Code != http.StatusTeapot {
		t.Errorf("underlying status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}

func TestCaptureGenerationOutcome(t *testing.T) {
	before := testutil.ToFloat64(generationOutcomes.WithLabelValues("quiz", "parse_error"))
	CaptureGenerationOutcome("quiz", "parse_error")
	after := testutil.ToFloat64(generationOutcomes.WithLabelValues("quiz", "parse_error"))

	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}

func TestSetIndexedChunks(t *testing.T) {
	SetIndexedChunks(42)
	if got := testutil.ToFloat64(indexedChunks); got != 42 {
		t.Errorf("gauge = %v, want 42", got)
	}
}
