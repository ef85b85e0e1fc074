package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestRecordListGenerated(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordListGenerated(3)
	c.RecordListGenerated(2)

	lists := findMetric(t, reg, "recipevault_shopping_lists_generated_total")
	assert.Equal(t, 2.0, lists.GetMetric()[0].GetCounter().GetValue())

	items := findMetric(t, reg, "recipevault_shopping_list_items_generated_total")
	assert.Equal(t, 5.0, items.GetMetric()[0].GetCounter().GetValue())
}

func TestRecordItemToggledLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordItemToggled(true)
	c.RecordItemToggled(true)
	c.RecordItemToggled(false)

	mf := findMetric(t, reg, "recipevault_shopping_list_items_toggled_total")
	values := map[string]float64{}
	for _, m := range mf.GetMetric() {
		values[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"true": 2, "false": 1}, values)
}

func TestRecordStoreErrorAndLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordStoreError("toggle")
	c.RecordStoreLatency("toggle", 350*time.Millisecond)
	c.RecordListDeleted()

	errs := findMetric(t, reg, "recipevault_store_errors_total")
	assert.Equal(t, 1.0, errs.GetMetric()[0].GetCounter().GetValue())

	latency := findMetric(t, reg, "recipevault_store_operation_seconds")
	assert.Equal(t, uint64(1), latency.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.35, latency.GetMetric()[0].GetHistogram().GetSampleSum(), 0.0001)

	deleted := findMetric(t, reg, "recipevault_shopping_lists_deleted_total")
	assert.Equal(t, 1.0, deleted.GetMetric()[0].GetCounter().GetValue())
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPRequest(http.MethodGet, "/api/v1/shopping-lists", http.StatusOK)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `recipevault_http_requests_total{method="GET",route="/api/v1/shopping-lists",status_code="200"} 1`)
}
