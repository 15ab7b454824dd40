package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/boqworks/boqworks/internal/boq"
)

// NewReminderScanHandler returns the handler that marks due reminders
// dispatched. Delivery is a log line for now; reminders surface in the
// API regardless.
func NewReminderScanHandler(logger *slog.Logger, service *boq.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReminderScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		now := payload.ScheduledFor
		if now.IsZero() {
			now = time.Now().UTC()
		}

		due, err := service.DispatchDueReminders(ctx, now)
		if err != nil {
			return err
		}
		for _, rem := range due {
			logger.Info("reminder due",
				slog.String("project_id", rem.ProjectID.String()),
				slog.String("note", rem.Note))
		}
		return nil
	}
}
