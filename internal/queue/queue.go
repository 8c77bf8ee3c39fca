// Package queue is a single-process stand-in for a message broker. Publish
// fans an event out synchronously to the handlers registered for its exact
// type; handler failures are logged and swallowed so publishing never fails
// the caller.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/matthieukhl/oms/internal/metrics"
	"github.com/matthieukhl/oms/internal/models"
)

type Handler func(ctx context.Context, event models.OrderEvent) error

// Publisher holds the handler registry. It is constructed by the composition
// root and passed by reference into the order workflow; there is no
// process-wide instance.
type Publisher struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	delay    time.Duration
	metrics  *metrics.Metrics
}

func NewPublisher(delay time.Duration, m *metrics.Metrics) *Publisher {
	return &Publisher{
		handlers: make(map[string][]Handler),
		delay:    delay,
		metrics:  m,
	}
}

// Subscribe registers a handler for an event type. Multiple handlers per type
// are allowed and invoked in registration order.
func (p *Publisher) Subscribe(eventType string, handler Handler) {
	p.mu.Lock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)
	p.mu.Unlock()

	log.Printf("[queue] subscribed to event: %s", eventType)
}

// Publish delivers the event to all handlers registered for its type, after a
// short artificial delay. Delivery is at-most-once: an event with no handlers
// is dropped, and handler errors do not propagate to the caller.
func (p *Publisher) Publish(ctx context.Context, event models.OrderEvent) {
	if payload, err := json.Marshal(event); err == nil {
		log.Printf("[queue] event published: %s", payload)
	}
	p.metrics.EventsPublished.WithLabelValues(event.Type).Inc()

	// Simulate async processing
	time.Sleep(p.delay)

	p.mu.Lock()
	handlers := make([]Handler, len(p.handlers[event.Type]))
	copy(handlers, p.handlers[event.Type])
	p.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			p.metrics.HandlerErrors.WithLabelValues(event.Type).Inc()
			log.Printf("[queue] error handling event %s: %v", event.Type, err)
		}
	}
}
