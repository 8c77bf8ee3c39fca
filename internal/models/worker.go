package models

import "time"

const (
	WorkerEmail     = "email"
	WorkerWebhook   = "webhook"
	WorkerInventory = "inventory"
)

// WorkerConfiguration is a declarative trigger rule for a downstream side
// effect. Configurations are matched against order status changes; a disabled
// configuration stays on record but never fires.
type WorkerConfiguration struct {
	ID              string     `json:"id" db:"id"`
	WorkerType      string     `json:"workerType" db:"worker_type"`
	Name            string     `json:"name" db:"name"`
	Enabled         bool       `json:"enabled" db:"enabled"`
	TriggerStatuses StringList `json:"triggerStatuses" db:"trigger_statuses"`
	Config          JSONMap    `json:"config" db:"config"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}
