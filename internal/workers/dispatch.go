package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/matthieukhl/oms/internal/models"
	"github.com/matthieukhl/oms/internal/queue"
)

// ConfigSource lists the worker configurations to match against.
type ConfigSource interface {
	FindAll(ctx context.Context) ([]models.WorkerConfiguration, error)
}

// StockAdjuster reduces product stock; implemented by the catalog store.
type StockAdjuster interface {
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// Dispatcher reacts to order status changes: it matches the new status
// against the trigger statuses of every enabled configuration and runs the
// side effect for each match. Failures are logged per configuration and
// never abort the remaining matches.
type Dispatcher struct {
	configs ConfigSource
	stock   StockAdjuster
	client  *http.Client
}

func NewDispatcher(configs ConfigSource, stock StockAdjuster) *Dispatcher {
	return &Dispatcher{
		configs: configs,
		stock:   stock,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Register subscribes the dispatcher to status-change events.
func (d *Dispatcher) Register(pub *queue.Publisher) {
	pub.Subscribe(models.EventOrderStatusChanged, d.HandleStatusChange)
}

// HandleStatusChange is the queue handler for order.status_changed events.
func (d *Dispatcher) HandleStatusChange(ctx context.Context, event models.OrderEvent) error {
	newStatus, _ := event.Data["newStatus"].(string)
	if newStatus == "" {
		return fmt.Errorf("status change event for order %s carries no newStatus", event.OrderID)
	}

	configs, err := d.configs.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load worker configurations: %w", err)
	}

	for _, cfg := range configs {
		if !cfg.Enabled || !cfg.TriggerStatuses.Contains(newStatus) {
			continue
		}
		if err := d.dispatch(ctx, cfg, event, newStatus); err != nil {
			log.Printf("[worker] %s %q failed for order %s: %v", cfg.WorkerType, cfg.Name, event.OrderID, err)
		}
	}

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, cfg models.WorkerConfiguration, event models.OrderEvent, status string) error {
	switch cfg.WorkerType {
	case models.WorkerEmail:
		return d.sendEmail(cfg, event, status)
	case models.WorkerWebhook:
		return d.callWebhook(ctx, cfg, event)
	case models.WorkerInventory:
		return d.adjustInventory(ctx, cfg, event)
	default:
		return fmt.Errorf("unknown worker type %q", cfg.WorkerType)
	}
}

// sendEmail logs the email that would be sent; there is no SMTP integration
// in this demo.
func (d *Dispatcher) sendEmail(cfg models.WorkerConfiguration, event models.OrderEvent, status string) error {
	log.Printf("[worker] email %q: order %s is now %s (template=%v, from=%v)",
		cfg.Name, event.OrderID, status, cfg.Config["templateId"], cfg.Config["from"])
	return nil
}

// callWebhook POSTs the event to the configured URL with the configured
// headers.
func (d *Dispatcher) callWebhook(ctx context.Context, cfg models.WorkerConfiguration, event models.OrderEvent) error {
	url, _ := cfg.Config["url"].(string)
	if url == "" {
		return fmt.Errorf("webhook %q has no url configured", cfg.Name)
	}

	method, _ := cfg.Config["method"].(string)
	if method == "" {
		method = http.MethodPost
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if headers, ok := cfg.Config["headers"].(map[string]any); ok {
		for key, value := range headers {
			if s, ok := value.(string); ok {
				req.Header.Set(key, s)
			}
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %q returned status %d", cfg.Name, resp.StatusCode)
	}

	log.Printf("[worker] webhook %q delivered order %s to %s", cfg.Name, event.OrderID, url)
	return nil
}

// adjustInventory decrements stock for every item of the order carried in the
// event. Each decrement is a guarded single-statement update.
func (d *Dispatcher) adjustInventory(ctx context.Context, cfg models.WorkerConfiguration, event models.OrderEvent) error {
	order, ok := event.Data["order"].(*models.Order)
	if !ok {
		return fmt.Errorf("inventory worker %q: event for order %s carries no order payload", cfg.Name, event.OrderID)
	}

	for _, item := range order.Items {
		if err := d.stock.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		log.Printf("[worker] inventory %q: reduced stock of product %s by %d", cfg.Name, item.ProductID, item.Quantity)
	}

	return nil
}
