// Package metrics exposes Prometheus metrics for the shopping list store
// and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records store and request metrics on a Prometheus registry.
type Collector struct {
	listsGenerated prometheus.Counter
	itemsGenerated prometheus.Counter
	listsDeleted   prometheus.Counter
	itemsToggled   *prometheus.CounterVec
	storeErrors    *prometheus.CounterVec
	storeLatency   *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		listsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipevault_shopping_lists_generated_total",
			Help: "Shopping lists generated from recipes.",
		}),
		itemsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipevault_shopping_list_items_generated_total",
			Help: "Consolidated items written into generated lists.",
		}),
		listsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipevault_shopping_lists_deleted_total",
			Help: "Shopping list delete calls.",
		}),
		itemsToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipevault_shopping_list_items_toggled_total",
			Help: "Item check state changes by new state.",
		}, []string{"checked"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipevault_store_errors_total",
			Help: "Failed store operations by operation.",
		}, []string{"op"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipevault_store_operation_seconds",
			Help:    "Store operation latency including simulated delay.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipevault_http_requests_total",
			Help: "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		c.listsGenerated,
		c.itemsGenerated,
		c.listsDeleted,
		c.itemsToggled,
		c.storeErrors,
		c.storeLatency,
		c.httpRequests,
	)
	return c
}

func (c *Collector) RecordListGenerated(items int) {
	c.listsGenerated.Inc()
	c.itemsGenerated.Add(float64(items))
}

func (c *Collector) RecordListDeleted() {
	c.listsDeleted.Inc()
}

func (c *Collector) RecordItemToggled(checked bool) {
	c.itemsToggled.WithLabelValues(strconv.FormatBool(checked)).Inc()
}

func (c *Collector) RecordStoreError(op string) {
	c.storeErrors.WithLabelValues(op).Inc()
}

func (c *Collector) RecordStoreLatency(op string, d time.Duration) {
	c.storeLatency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordHTTPRequest counts one served request.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
