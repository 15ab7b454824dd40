// Package jobs holds background task definitions and the Asynq worker
// plumbing.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogPriceRefresh fans a catalog price change out to
	// stored project items.
	TaskCatalogPriceRefresh = "catalog:price_refresh"
	// TaskReminderScan looks for due project reminders.
	TaskReminderScan = "reminders:scan"
)

// PriceRefreshPayload carries the changed material and its new
// average prices.
type PriceRefreshPayload struct {
	MaterialID string  `json:"material_id"`
	PriceUSD   float64 `json:"price_usd"`
	PriceZWG   float64 `json:"price_zwg"`
}

// NewPriceRefreshTask constructs an Asynq task for a price change.
func NewPriceRefreshTask(payload PriceRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogPriceRefresh, data, asynq.Queue(QueueDefault)), nil
}

// ReminderScanPayload carries scheduling metadata.
type ReminderScanPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewReminderScanTask constructs an Asynq task for the reminder scan.
func NewReminderScanTask(at time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(ReminderScanPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderScan, data, asynq.Queue(QueueDefault)), nil
}
