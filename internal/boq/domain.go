package boq

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a construction-stage milestone key.
type Stage string

const (
	StageSubstructure   Stage = "substructure"
	StageSuperstructure Stage = "superstructure"
	StageRoofing        Stage = "roofing"
	StageFinishing      Stage = "finishing"
	StageExterior       Stage = "exterior"
	StageLabor          Stage = "labor"
)

// StageOrder fixes milestone display and export order.
var StageOrder = []Stage{
	StageSubstructure,
	StageSuperstructure,
	StageRoofing,
	StageFinishing,
	StageExterior,
	StageLabor,
}

// Project is one estimation project assembled by the wizard and edited
// in the builder view.
type Project struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	LocationType   string      `json:"location_type" db:"location_type"`
	BuildingType   string      `json:"building_type" db:"building_type"`
	Scope          string      `json:"scope" db:"scope"`
	IncludeLabor   bool        `json:"include_labor" db:"include_labor"`
	ExchangeRate   float64     `json:"exchange_rate" db:"exchange_rate"`
	CatalogVersion string      `json:"catalog_version" db:"catalog_version"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
	Milestones     []Milestone `json:"milestones,omitempty" db:"-"`
}

// Milestone groups the items of one construction stage.
type Milestone struct {
	Stage    Stage  `json:"id"`
	Items    []Item `json:"items"`
	Expanded bool   `json:"expanded"`
}

// Item is a user-facing, editable line. Average prices track the
// catalog; actual prices track what the project is really paying and
// may diverge. A nil Quantity means "not yet quantified".
type Item struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProjectID       uuid.UUID `json:"project_id" db:"project_id"`
	Stage           Stage     `json:"stage" db:"stage"`
	MaterialID      string    `json:"material_id" db:"material_id"`
	MaterialName    string    `json:"material_name" db:"material_name"`
	Quantity        *float64  `json:"quantity" db:"quantity"`
	Unit            string    `json:"unit" db:"unit"`
	AveragePriceUSD float64   `json:"average_price_usd" db:"average_price_usd"`
	AveragePriceZWG float64   `json:"average_price_zwg" db:"average_price_zwg"`
	ActualPriceUSD  float64   `json:"actual_price_usd" db:"unit_price_usd"`
	ActualPriceZWG  float64   `json:"actual_price_zwg" db:"unit_price_zwg"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Category        string    `json:"category" db:"category"`
	// CalculatedQuantity keeps the originally generated figure so a
	// later manual edit can be flagged as an override.
	CalculatedQuantity *float64  `json:"calculated_quantity,omitempty" db:"calculated_quantity"`
	IsOverridden       bool      `json:"is_overridden" db:"is_overridden"`
	Notes              *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Reminder is a dated follow-up note attached to a project.
type Reminder struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	DueAt     time.Time `json:"due_at" db:"due_at"`
	Note      string    `json:"note" db:"note"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ShareLink is a read-only handle to a project.
type ShareLink struct {
	Token     string    `json:"token" db:"token"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
