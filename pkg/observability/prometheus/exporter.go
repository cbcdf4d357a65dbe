// Package prometheus exports bus activity as prometheus metrics. Metrics
// implements eventbus.Hooks, so wiring it into a bus is one Config field;
// the handlers here expose the scrape endpoint over net/http or fasthttp.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// DefaultRegistry is the registry the package-level handlers serve.
var DefaultRegistry = prometheus.NewRegistry()

// Handler returns an HTTP handler for the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// HandlerFor returns an HTTP handler for a custom registry.
func HandlerFor(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// FastHTTPHandler returns a fasthttp handler for the metrics endpoint,
// adapted from the standard promhttp handler.
func FastHTTPHandler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(Handler())
}

// FastHTTPHandlerFor returns a fasthttp handler for a custom registry.
func FastHTTPHandlerFor(registry *prometheus.Registry) fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(HandlerFor(registry))
}
