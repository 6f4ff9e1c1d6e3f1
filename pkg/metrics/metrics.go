// Package metrics bootstraps the Prometheus registry. Subsystems build
// their own metric sets against the registerer; when metrics are
// disabled they hold a nil metric set, whose methods do nothing.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
)

// Init creates the process registry with the standard Go and process
// collectors. Calling it twice returns the same registry.
func Init() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return registry
}

// Registry returns the registry, or nil when metrics were never
// initialized.
func Registry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// Enabled reports whether Init has been called.
func Enabled() bool {
	return Registry() != nil
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	reg := Registry()
	if reg == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
