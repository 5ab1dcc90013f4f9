// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request-level and domain counters.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	cartDownloads   prometheus.Counter
	cartItemsListed prometheus.Counter
}

// NewCollector registers the collectors on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "platefeed_http_requests_total",
			Help: "HTTP requests handled, by method and status code.",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "platefeed_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		cartDownloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platefeed_shopping_list_downloads_total",
			Help: "Rendered shopping list documents served.",
		}),
		cartItemsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platefeed_shopping_list_items_total",
			Help: "Aggregated line items across served shopping lists.",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.cartDownloads,
		c.cartItemsListed,
	)

	return c
}

// RecordRequest records one handled HTTP request.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// RecordShoppingListDownload records one served shopping list document.
func (c *Collector) RecordShoppingListDownload(items int) {
	if c == nil {
		return
	}
	c.cartDownloads.Inc()
	c.cartItemsListed.Add(float64(items))
}

// Handler returns the scrape endpoint handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
