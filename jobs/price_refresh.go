package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/boqworks/boqworks/internal/boq"
)

// NewPriceRefreshHandler returns the handler that walks stored items
// referencing a changed material and advances their prices. Items a
// user priced manually are left alone; that decision lives in the boq
// service.
func NewPriceRefreshHandler(logger *slog.Logger, service *boq.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload PriceRefreshPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.MaterialID == "" {
			return asynq.SkipRetry
		}

		updated, err := service.RefreshMaterialPrices(ctx, payload.MaterialID, payload.PriceUSD, payload.PriceZWG)
		if err != nil {
			return err
		}
		logger.Info("price refresh complete",
			slog.String("material_id", payload.MaterialID),
			slog.Int("items_updated", updated))
		return nil
	}
}
