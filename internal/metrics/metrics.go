package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application counters. Each instance owns its own
// registry so construction is side-effect free and repeatable in tests.
type Metrics struct {
	registry *prometheus.Registry

	OrdersCreated   prometheus.Counter
	EventsPublished *prometheus.CounterVec
	HandlerErrors   *prometheus.CounterVec
}

func New(service string) *Metrics {
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
	eventsPublished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: service,
		Name:      "events_published_total",
		Help:      "Total number of domain events published to the queue.",
	}, []string{"type"})
	handlerErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: service,
		Name:      "event_handler_errors_total",
		Help:      "Total number of event handler failures (logged, never surfaced).",
	}, []string{"type"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(ordersCreated, eventsPublished, handlerErrors)

	return &Metrics{
		registry:        registry,
		OrdersCreated:   ordersCreated,
		EventsPublished: eventsPublished,
		HandlerErrors:   handlerErrors,
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
