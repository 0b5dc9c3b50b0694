package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.ReceiptCreated("CH")
	m.ReceiptCreated("CH")
	m.DocumentRendered("Invoice")
	m.ExportCompleted(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.receiptsCreated.WithLabelValues("CH")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.exportedReceipts))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nota_receipts_created_total")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ReceiptCreated("CR")
	m.DocumentFailed("render")
	m.ExportCompleted(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
