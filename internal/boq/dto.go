package boq

import (
	"time"

	"github.com/boqworks/boqworks/internal/estimate"
)

// CreateProjectRequest carries the wizard output used to seed a project.
type CreateProjectRequest struct {
	Name         string          `json:"name" validate:"required,max=120"`
	LocationType string          `json:"location_type" validate:"required,max=40"`
	BuildingType string          `json:"building_type" validate:"required,max=40"`
	Config       estimate.Config `json:"config"`
}

// AddItemRequest adds a manual line to a milestone.
type AddItemRequest struct {
	Stage        Stage    `json:"stage" validate:"required"`
	MaterialID   string   `json:"material_id" validate:"required,max=60"`
	Quantity     *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Description  *string  `json:"description,omitempty"`
}

// UpdateItemRequest edits quantity and/or actual price on a line. Nil
// fields are left untouched.
type UpdateItemRequest struct {
	Quantity       *float64 `json:"quantity" validate:"omitempty,gte=0"`
	ActualPriceUSD *float64 `json:"actual_price_usd" validate:"omitempty,gte=0"`
	ActualPriceZWG *float64 `json:"actual_price_zwg" validate:"omitempty,gte=0"`
	Description    *string  `json:"description,omitempty"`
}

// SaveItemsRequest replaces a project's full item set (autosave and
// explicit save both use it).
type SaveItemsRequest struct {
	Items []Item `json:"items" validate:"dive"`
}

// CreateReminderRequest schedules a follow-up for a project.
type CreateReminderRequest struct {
	DueAt time.Time `json:"due_at" validate:"required"`
	Note  string    `json:"note" validate:"required,max=500"`
}

// ListProjectsRequest filters the project listing.
type ListProjectsRequest struct {
	Limit  int `json:"limit" validate:"gte=0,lte=200"`
	Offset int `json:"offset" validate:"gte=0"`
}
