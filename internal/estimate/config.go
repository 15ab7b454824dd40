// Package estimate turns basic project parameters into a generated
// bill-of-quantities line list. Everything in this package is pure and
// deterministic: no I/O, no clock, no shared state.
package estimate

import (
	"math"

	"github.com/boqworks/boqworks/internal/catalog"
)

// BrickType selects the walling unit and its coverage rate.
type BrickType string

const (
	BrickCommon BrickType = "common"
	BrickFarm   BrickType = "farm"
	Block6Inch  BrickType = "blocks_6inch"
	Block8Inch  BrickType = "blocks_8inch"
)

// CementType selects the cement grade, which changes concrete yield.
type CementType string

const (
	Cement325 CementType = "cement_325"
	Cement425 CementType = "cement_425"
)

// Scope selects which construction stage to generate for.
type Scope string

const (
	ScopeSubstructure   Scope = "substructure"
	ScopeSuperstructure Scope = "superstructure"
	ScopeRoofing        Scope = "roofing"
	ScopeFinishing      Scope = "finishing"
	ScopeExterior       Scope = "exterior"
	ScopeFullHouse      Scope = "full_house"
)

// Room is explicit geometry emitted by the sketching canvas.
type Room struct {
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	Doors   int     `json:"doors"`
	Windows int     `json:"windows"`
}

// Config is the generator input. Zero or invalid optional fields fall
// back to documented defaults instead of producing errors; this is a
// rough estimator, not a validator.
type Config struct {
	FloorArea      float64    `json:"floor_area"`
	RoomCount      int        `json:"room_count"`
	WallHeight     float64    `json:"wall_height"`
	BrickType      BrickType  `json:"brick_type"`
	CementType     CementType `json:"cement_type"`
	Scope          Scope      `json:"scope"`
	IncludeLabor   bool       `json:"include_labor"`
	Rooms          []Room     `json:"rooms,omitempty"`
	BoundaryLength float64    `json:"boundary_length,omitempty"`
}

// Defaults substituted for absent or invalid inputs.
const (
	DefaultFloorArea      = 100.0
	DefaultRoomCount      = 4
	DefaultWallHeight     = 2.7
	DefaultBoundaryLength = 120.0
)

// Item is one generated line. Items are created fresh on every
// invocation and never mutated; callers copy fields into their own
// editable records.
type Item struct {
	Stage        Scope            `json:"stage"`
	MaterialID   string           `json:"material_id"`
	MaterialName string           `json:"material_name"`
	Category     catalog.Category `json:"category"`
	Quantity     float64          `json:"quantity"`
	Unit         string           `json:"unit"`
	UnitPriceUSD float64          `json:"unit_price_usd"`
	UnitPriceZWG float64          `json:"unit_price_zwg"`
	Note         string           `json:"note"`
}

// withDefaults returns a copy of cfg with fallbacks applied. The input
// is never modified.
func (c Config) withDefaults() Config {
	out := c
	if !(out.FloorArea > 0) || math.IsNaN(out.FloorArea) || math.IsInf(out.FloorArea, 0) {
		out.FloorArea = DefaultFloorArea
	}
	if out.RoomCount <= 0 {
		out.RoomCount = DefaultRoomCount
	}
	if !(out.WallHeight > 0) || math.IsNaN(out.WallHeight) || math.IsInf(out.WallHeight, 0) {
		out.WallHeight = DefaultWallHeight
	}
	switch out.BrickType {
	case BrickCommon, BrickFarm, Block6Inch, Block8Inch:
	default:
		out.BrickType = BrickCommon
	}
	switch out.CementType {
	case Cement325, Cement425:
	default:
		out.CementType = Cement325
	}
	if !(out.BoundaryLength > 0) || math.IsNaN(out.BoundaryLength) || math.IsInf(out.BoundaryLength, 0) {
		out.BoundaryLength = DefaultBoundaryLength
	}
	// Rooms with non-positive dimensions carry no usable geometry.
	if len(out.Rooms) > 0 {
		rooms := make([]Room, 0, len(out.Rooms))
		for _, r := range out.Rooms {
			if r.Width > 0 && r.Length > 0 {
				rooms = append(rooms, r)
			}
		}
		out.Rooms = rooms
	}
	return out
}

// hasGeometry reports whether an explicit room list survived defaulting.
func (c Config) hasGeometry() bool {
	return len(c.Rooms) > 0
}
