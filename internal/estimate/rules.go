package estimate

import (
	"fmt"
	"math"
)

// Coefficients used by the quantity rules. Walling coverage rates match
// the rates shown alongside each brick option in the product wizard.
const (
	bricksPerM2Common = 50.0
	bricksPerM2Farm   = 48.0
	blocksPerM2Six    = 12.0
	blocksPerM2Eight  = 10.0

	// Concrete yield. 32.5N needs more bags to reach the same strength
	// per cubic metre than 42.5N.
	bagsPerM3Cement325 = 7.5
	bagsPerM3Cement425 = 6.5

	slabThickness    = 0.10 // m
	hardcoreDepth    = 0.15 // m
	footingWidth     = 0.23 // m
	footingDepth     = 0.23 // m
	foundationCourse = 0.69 // m of foundation brickwork height

	doorOpeningArea   = 1.68 // m², 813x2032 standard leaf
	windowOpeningArea = 1.44 // m², NC2-ish frame

	internalWallFactor = 1.3 // heuristic allowance for internal walls

	roofPitchFactor = 1.35  // pitch plus overhang over the footprint
	sheetCoverWidth = 0.686 // m of cover per IBR sheet width

	mortarCementPerBrick   = 0.003  // bags per common/farm brick
	mortarCementPerBlock6  = 0.0125 // bags per 6" block
	mortarCementPerBlock8  = 0.0143 // bags per 8" block
	mortarSandPerCementBag = 0.2    // m³ river sand per bag

	plasterSandPerM2   = 0.016 // m³ per m² at ~15mm
	plasterCementPerM2 = 0.12  // bags per m²
	paintCoveragePerL  = 4.5   // m² per litre over two coats
	undercoatPerL      = 10.0  // m² per litre

	boundaryWallHeight = 1.8 // m

	dpcRollLength       = 30.0
	brickforceRollLen   = 20.0
	rebarLength         = 6.0
	courseHeight        = 0.086 // m per brick course
	tileWastageFactor   = 1.05
	tileAdhesiveM2PerBg = 4.5
)

// measures are the figures derived once per generation and shared by
// all rules, together with the branch each figure came from so notes
// can say which formula was actually used.
type measures struct {
	area          float64
	perimeter     float64
	perimeterSrc  string // "geometry" or "area"
	netWallArea   float64
	wallAreaSrc   string
	doors         int
	windows       int
	openingsSrc   string
	roofArea      float64
	ridgeLength   float64
	concreteBags  float64 // bags per m³ for the selected cement
	bricksPerM2   float64
	mortarPerUnit float64
}

func deriveMeasures(cfg Config) measures {
	m := measures{area: cfg.FloorArea}

	switch cfg.CementType {
	case Cement425:
		m.concreteBags = bagsPerM3Cement425
	default:
		m.concreteBags = bagsPerM3Cement325
	}

	switch cfg.BrickType {
	case BrickFarm:
		m.bricksPerM2 = bricksPerM2Farm
		m.mortarPerUnit = mortarCementPerBrick
	case Block6Inch:
		m.bricksPerM2 = blocksPerM2Six
		m.mortarPerUnit = mortarCementPerBlock6
	case Block8Inch:
		m.bricksPerM2 = blocksPerM2Eight
		m.mortarPerUnit = mortarCementPerBlock8
	default:
		m.bricksPerM2 = bricksPerM2Common
		m.mortarPerUnit = mortarCementPerBrick
	}

	if cfg.hasGeometry() {
		// Explicit geometry beats the area heuristic wherever present.
		var perim float64
		var doors, windows int
		for _, r := range cfg.Rooms {
			perim += 2 * (r.Width + r.Length)
			doors += r.Doors
			windows += r.Windows
		}
		m.perimeter = perim
		m.perimeterSrc = "geometry"
		m.doors = doors
		m.windows = windows
		m.openingsSrc = "geometry"

		gross := perim * cfg.WallHeight
		openings := float64(doors)*doorOpeningArea + float64(windows)*windowOpeningArea
		net := gross - openings
		if net < 0 {
			net = 0
		}
		m.netWallArea = net
		m.wallAreaSrc = "geometry"
	} else {
		// Square footprint assumption: P = 4√A.
		m.perimeter = 4 * math.Sqrt(cfg.FloorArea)
		m.perimeterSrc = "area"
		m.doors = cfg.RoomCount + 1
		m.windows = cfg.RoomCount + 2
		m.openingsSrc = "room count"

		gross := m.perimeter * cfg.WallHeight * internalWallFactor
		openings := float64(m.doors)*doorOpeningArea + float64(m.windows)*windowOpeningArea
		net := gross - openings
		if net < 0 {
			net = 0
		}
		m.netWallArea = net
		m.wallAreaSrc = "area"
	}

	m.roofArea = cfg.FloorArea * roofPitchFactor
	m.ridgeLength = math.Sqrt(cfg.FloorArea) * 1.1
	return m
}

// rule binds one catalog material to its quantity formula. The note
// returned alongside the quantity states the formula actually used so
// every generated figure can be audited.
type rule struct {
	materialID string
	quantity   func(cfg Config, m measures) (float64, string)
}

func wallingMaterialID(t BrickType) string {
	switch t {
	case BrickFarm:
		return "brick-farm"
	case Block6Inch:
		return "block-6"
	case Block8Inch:
		return "block-8"
	default:
		return "brick-common"
	}
}

func cementMaterialID(t CementType) string {
	if t == Cement425 {
		return "cement-425"
	}
	return "cement-325"
}

func substructureRules(cfg Config) []rule {
	cement := cementMaterialID(cfg.CementType)
	return []rule{
		{"hardcore", func(cfg Config, m measures) (float64, string) {
			q := m.area * hardcoreDepth
			return q, fmt.Sprintf("%.0fm² × %.2fm fill depth", m.area, hardcoreDepth)
		}},
		{cement, func(cfg Config, m measures) (float64, string) {
			slab := m.area * slabThickness
			footing := m.perimeter * footingWidth * footingDepth
			q := (slab + footing) * m.concreteBags
			return q, fmt.Sprintf("(%.1fm³ slab + %.1fm³ footing, %s perimeter) × %.1f bags/m³ (%s)",
				slab, footing, m.perimeterSrc, m.concreteBags, cfg.CementType)
		}},
		{"sand-pit", func(cfg Config, m measures) (float64, string) {
			vol := m.area*slabThickness + m.perimeter*footingWidth*footingDepth
			q := vol * 0.5
			return q, fmt.Sprintf("%.1fm³ concrete × 0.5m³ sand/m³", vol)
		}},
		{"stone-concrete", func(cfg Config, m measures) (float64, string) {
			vol := m.area*slabThickness + m.perimeter*footingWidth*footingDepth
			q := vol * 0.8
			return q, fmt.Sprintf("%.1fm³ concrete × 0.8m³ stone/m³", vol)
		}},
		{"brick-common", func(cfg Config, m measures) (float64, string) {
			// Foundation walling is double-skin common brick regardless of
			// the superstructure walling choice.
			wall := m.perimeter * foundationCourse
			q := wall * bricksPerM2Common * 2
			return q, fmt.Sprintf("%.1fm %s perimeter × %.2fm courses × %.0f/m² × 2 skins",
				m.perimeter, m.perimeterSrc, foundationCourse, bricksPerM2Common)
		}},
		{"dpc-membrane", func(cfg Config, m measures) (float64, string) {
			q := m.perimeter / dpcRollLength
			return q, fmt.Sprintf("%.1fm %s perimeter ÷ %.0fm/roll", m.perimeter, m.perimeterSrc, dpcRollLength)
		}},
		{"rebar-y12", func(cfg Config, m measures) (float64, string) {
			q := m.perimeter * 4 / rebarLength
			return q, fmt.Sprintf("%.1fm perimeter × 4 bars ÷ %.0fm/length", m.perimeter, rebarLength)
		}},
		{"brickforce", func(cfg Config, m measures) (float64, string) {
			q := m.perimeter * 3 / brickforceRollLen
			return q, fmt.Sprintf("%.1fm perimeter × 3 courses ÷ %.0fm/roll", m.perimeter, brickforceRollLen)
		}},
	}
}

func superstructureRules(cfg Config) []rule {
	walling := wallingMaterialID(cfg.BrickType)
	cement := cementMaterialID(cfg.CementType)
	return []rule{
		{walling, func(cfg Config, m measures) (float64, string) {
			q := m.netWallArea * m.bricksPerM2
			return q, fmt.Sprintf("%.1fm² net wall (%s-based, openings deducted) × %.0f/m²",
				m.netWallArea, m.wallAreaSrc, m.bricksPerM2)
		}},
		{cement, func(cfg Config, m measures) (float64, string) {
			units := m.netWallArea * m.bricksPerM2
			q := units * m.mortarPerUnit
			return q, fmt.Sprintf("%.0f units × %.4f bags mortar/unit", units, m.mortarPerUnit)
		}},
		{"sand-river", func(cfg Config, m measures) (float64, string) {
			bags := m.netWallArea * m.bricksPerM2 * m.mortarPerUnit
			q := bags * mortarSandPerCementBag
			return q, fmt.Sprintf("%.1f mortar bags × %.1fm³ sand/bag", bags, mortarSandPerCementBag)
		}},
		{"brickforce", func(cfg Config, m measures) (float64, string) {
			courses := cfg.WallHeight / courseHeight / 3
			q := m.perimeter * courses / brickforceRollLen
			return q, fmt.Sprintf("%.1fm perimeter × every 3rd course (%.1f runs) ÷ %.0fm/roll",
				m.perimeter, courses, brickforceRollLen)
		}},
		{"lintel-concrete", func(cfg Config, m measures) (float64, string) {
			q := float64(m.doors + m.windows)
			return q, fmt.Sprintf("%d doors + %d windows (%s)", m.doors, m.windows, m.openingsSrc)
		}},
		{"doorframe-steel", func(cfg Config, m measures) (float64, string) {
			return float64(m.doors), fmt.Sprintf("%d door openings (%s)", m.doors, m.openingsSrc)
		}},
		{"window-steel", func(cfg Config, m measures) (float64, string) {
			return float64(m.windows), fmt.Sprintf("%d window openings (%s)", m.windows, m.openingsSrc)
		}},
	}
}

func roofingRules() []rule {
	return []rule{
		{"ibr-sheet", func(cfg Config, m measures) (float64, string) {
			q := m.roofArea / sheetCoverWidth
			return q, fmt.Sprintf("%.0fm² × %.2f pitch factor ÷ %.3fm cover", m.area, roofPitchFactor, sheetCoverWidth)
		}},
		{"ridge-cap", func(cfg Config, m measures) (float64, string) {
			return m.ridgeLength, fmt.Sprintf("√%.0fm² × 1.1 ridge run", m.area)
		}},
		{"timber-rafter", func(cfg Config, m measures) (float64, string) {
			q := m.perimeter * 2.5
			return q, fmt.Sprintf("%.1fm %s perimeter × 2.5 (1.1m rafter spacing)", m.perimeter, m.perimeterSrc)
		}},
		{"timber-purlin", func(cfg Config, m measures) (float64, string) {
			q := m.roofArea * 1.4
			return q, fmt.Sprintf("%.1fm² roof × 1.4 linear m/m²", m.roofArea)
		}},
		{"roof-screws", func(cfg Config, m measures) (float64, string) {
			q := m.roofArea / 25
			return q, fmt.Sprintf("%.1fm² roof ÷ 25m² per box", m.roofArea)
		}},
	}
}

func finishingRules(cfg Config) []rule {
	cement := cementMaterialID(cfg.CementType)
	return []rule{
		{"sand-plaster", func(cfg Config, m measures) (float64, string) {
			area := m.netWallArea * 2
			q := area * plasterSandPerM2
			return q, fmt.Sprintf("%.1fm² both faces (%s-based) × %.3fm³/m²", area, m.wallAreaSrc, plasterSandPerM2)
		}},
		{cement, func(cfg Config, m measures) (float64, string) {
			area := m.netWallArea * 2
			q := area * plasterCementPerM2
			return q, fmt.Sprintf("%.1fm² plaster × %.2f bags/m²", area, plasterCementPerM2)
		}},
		{"paint-pva", func(cfg Config, m measures) (float64, string) {
			area := m.netWallArea * 2
			q := area / paintCoveragePerL
			return q, fmt.Sprintf("%.1fm² ÷ %.1fm²/litre (two coats)", area, paintCoveragePerL)
		}},
		{"paint-undercoat", func(cfg Config, m measures) (float64, string) {
			area := m.netWallArea * 2
			q := area / undercoatPerL
			return q, fmt.Sprintf("%.1fm² ÷ %.0fm²/litre", area, undercoatPerL)
		}},
		{"floor-tiles", func(cfg Config, m measures) (float64, string) {
			q := m.area * tileWastageFactor
			return q, fmt.Sprintf("%.0fm² floor × %.2f wastage", m.area, tileWastageFactor)
		}},
		{"tile-adhesive", func(cfg Config, m measures) (float64, string) {
			q := m.area / tileAdhesiveM2PerBg
			return q, fmt.Sprintf("%.0fm² ÷ %.1fm²/bag", m.area, tileAdhesiveM2PerBg)
		}},
		{"door-flush", func(cfg Config, m measures) (float64, string) {
			return float64(m.doors), fmt.Sprintf("%d door openings (%s)", m.doors, m.openingsSrc)
		}},
		{"window-glass", func(cfg Config, m measures) (float64, string) {
			q := float64(m.windows) * 0.97
			return q, fmt.Sprintf("%d windows × 0.97m² glazing", m.windows)
		}},
	}
}

func exteriorRules(cfg Config) []rule {
	cement := cementMaterialID(cfg.CementType)
	return []rule{
		{"brick-common", func(cfg Config, m measures) (float64, string) {
			wall := cfg.BoundaryLength * boundaryWallHeight
			q := wall * bricksPerM2Common * 1.1
			return q, fmt.Sprintf("%.0fm boundary × %.1fm × %.0f/m² + 10%% pillars",
				cfg.BoundaryLength, boundaryWallHeight, bricksPerM2Common)
		}},
		{cement, func(cfg Config, m measures) (float64, string) {
			bricks := cfg.BoundaryLength * boundaryWallHeight * bricksPerM2Common * 1.1
			q := bricks * mortarCementPerBrick
			return q, fmt.Sprintf("%.0f boundary bricks × %.3f bags/brick", bricks, mortarCementPerBrick)
		}},
		{"sand-pit", func(cfg Config, m measures) (float64, string) {
			bags := cfg.BoundaryLength * boundaryWallHeight * bricksPerM2Common * 1.1 * mortarCementPerBrick
			q := bags * mortarSandPerCementBag
			return q, fmt.Sprintf("%.1f mortar bags × %.1fm³ sand/bag", bags, mortarSandPerCementBag)
		}},
	}
}

// laborRules emit crew-day and service lines. Quantity is days (or
// trips for transport), not material counts.
func laborRules() []rule {
	return []rule{
		{"labor-builder", func(cfg Config, m measures) (float64, string) {
			q := laborDays(m.area)
			return q, fmt.Sprintf("%.0f crew days for %.0fm²", q, m.area)
		}},
		{"labor-assistant", func(cfg Config, m measures) (float64, string) {
			q := laborDays(m.area) * 2
			return q, fmt.Sprintf("2 assistants × %.0f crew days", laborDays(m.area))
		}},
		{"labor-foreman", func(cfg Config, m measures) (float64, string) {
			q := laborDays(m.area) * 0.5
			return q, fmt.Sprintf("half-time over %.0f crew days", laborDays(m.area))
		}},
		{"service-food", func(cfg Config, m measures) (float64, string) {
			q := laborDays(m.area)
			return q, fmt.Sprintf("meals over %.0f crew days", laborDays(m.area))
		}},
		{"service-transport", func(cfg Config, m measures) (float64, string) {
			q := math.Ceil(m.area/50) + 2
			return q, fmt.Sprintf("%.0fm² ÷ 50m²/trip + 2 base trips", m.area)
		}},
	}
}

// laborDays estimates build duration from floor area; larger projects
// assume proportionally more labor days.
func laborDays(area float64) float64 {
	return 30 + area*0.45
}

// stageRules pairs a construction stage with its rule set so items
// generated for a combined scope keep their milestone attribution.
type stageRules struct {
	stage Scope
	rules []rule
}

// rulesForScope resolves the declarative dispatch table. A full-house
// scope covers the four house stages; the boundary wall stays opt-in
// via the explicit exterior scope.
func rulesForScope(cfg Config) []stageRules {
	switch cfg.Scope {
	case ScopeSubstructure:
		return []stageRules{{ScopeSubstructure, substructureRules(cfg)}}
	case ScopeSuperstructure:
		return []stageRules{{ScopeSuperstructure, superstructureRules(cfg)}}
	case ScopeRoofing:
		return []stageRules{{ScopeRoofing, roofingRules()}}
	case ScopeFinishing:
		return []stageRules{{ScopeFinishing, finishingRules(cfg)}}
	case ScopeExterior:
		return []stageRules{{ScopeExterior, exteriorRules(cfg)}}
	case ScopeFullHouse:
		return []stageRules{
			{ScopeSubstructure, substructureRules(cfg)},
			{ScopeSuperstructure, superstructureRules(cfg)},
			{ScopeRoofing, roofingRules()},
			{ScopeFinishing, finishingRules(cfg)},
		}
	default:
		return []stageRules{{ScopeSubstructure, substructureRules(cfg)}}
	}
}
