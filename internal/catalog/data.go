package catalog

import "time"

// Default returns the built-in material price list. Prices are the
// catalog "average" market prices in USD with their ZWG equivalents as
// captured on the price-list date; the ZWG column keeps its own ratio
// per material rather than a single blanket rate.
func Default() *Catalog {
	return NewCatalog(defaultMaterials())
}

var priceListDate = time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC)

func defaultMaterials() []Material {
	return []Material{
		{ID: "brick-common", Name: "Common Brick", Category: CategoryBricks, Unit: "each", PriceUSD: 0.10, PriceZWG: 2.65, Spec: "Clay common, 222x106x73mm", UpdatedAt: priceListDate},
		{ID: "brick-farm", Name: "Farm Brick", Category: CategoryBricks, Unit: "each", PriceUSD: 0.07, PriceZWG: 1.86, Spec: "Field-fired farm brick", UpdatedAt: priceListDate},
		{ID: "block-6", Name: "Concrete Block 6\"", Category: CategoryBricks, Unit: "each", PriceUSD: 0.75, PriceZWG: 19.88, Spec: "390x140x190mm hollow", UpdatedAt: priceListDate},
		{ID: "block-8", Name: "Concrete Block 8\"", Category: CategoryBricks, Unit: "each", PriceUSD: 0.95, PriceZWG: 25.18, Spec: "390x190x190mm hollow", UpdatedAt: priceListDate},

		{ID: "cement-325", Name: "Cement 32.5N", Category: CategoryCement, Unit: "bag", PriceUSD: 9.50, PriceZWG: 251.75, Spec: "50kg PC15 masonry", UpdatedAt: priceListDate},
		{ID: "cement-425", Name: "Cement 42.5N", Category: CategoryCement, Unit: "bag", PriceUSD: 11.00, PriceZWG: 291.50, Spec: "50kg structural", UpdatedAt: priceListDate},

		{ID: "sand-river", Name: "River Sand", Category: CategorySand, Unit: "m3", PriceUSD: 25.00, PriceZWG: 662.50, Spec: "Washed river sand", UpdatedAt: priceListDate},
		{ID: "sand-pit", Name: "Pit Sand", Category: CategorySand, Unit: "m3", PriceUSD: 18.00, PriceZWG: 477.00, Spec: "Building pit sand", UpdatedAt: priceListDate},
		{ID: "sand-plaster", Name: "Plaster Sand", Category: CategorySand, Unit: "m3", PriceUSD: 30.00, PriceZWG: 795.00, Spec: "Fine screened", UpdatedAt: priceListDate},

		{ID: "stone-concrete", Name: "Concrete Stone 19mm", Category: CategoryAggregates, Unit: "m3", PriceUSD: 38.00, PriceZWG: 1007.00, Spec: "3/4 inch crushed granite", UpdatedAt: priceListDate},
		{ID: "hardcore", Name: "Hardcore Fill", Category: CategoryAggregates, Unit: "m3", PriceUSD: 15.00, PriceZWG: 397.50, Spec: "Dump rock / rubble fill", UpdatedAt: priceListDate},

		{ID: "rebar-y12", Name: "Reinforcement Bar Y12", Category: CategorySteel, Unit: "length", PriceUSD: 7.50, PriceZWG: 198.75, Spec: "12mm x 6m deformed", UpdatedAt: priceListDate},
		{ID: "brickforce", Name: "Brickforce Wire", Category: CategorySteel, Unit: "roll", PriceUSD: 8.00, PriceZWG: 212.00, Spec: "150mm x 20m", UpdatedAt: priceListDate},
		{ID: "dpc-membrane", Name: "DPC Membrane 230mm", Category: CategorySteel, Unit: "roll", PriceUSD: 12.00, PriceZWG: 318.00, Spec: "250 micron, 30m roll", UpdatedAt: priceListDate},
		{ID: "lintel-concrete", Name: "Precast Lintel 1.2m", Category: CategorySteel, Unit: "each", PriceUSD: 9.00, PriceZWG: 238.50, Spec: "110x75mm prestressed", UpdatedAt: priceListDate},

		{ID: "ibr-sheet", Name: "IBR Roof Sheet 0.4mm", Category: CategoryRoofing, Unit: "m", PriceUSD: 5.80, PriceZWG: 153.70, Spec: "686mm cover, galvanised", UpdatedAt: priceListDate},
		{ID: "ridge-cap", Name: "Ridge Cap", Category: CategoryRoofing, Unit: "m", PriceUSD: 4.50, PriceZWG: 119.25, Spec: "Galvanised 0.4mm", UpdatedAt: priceListDate},
		{ID: "roof-screws", Name: "Roofing Tek Screws", Category: CategoryRoofing, Unit: "box", PriceUSD: 14.00, PriceZWG: 371.00, Spec: "Box of 100 with washers", UpdatedAt: priceListDate},

		{ID: "timber-rafter", Name: "Roof Timber 76x50", Category: CategoryTimber, Unit: "m", PriceUSD: 1.90, PriceZWG: 50.35, Spec: "SA pine, treated", UpdatedAt: priceListDate},
		{ID: "timber-purlin", Name: "Purlin 76x38", Category: CategoryTimber, Unit: "m", PriceUSD: 1.40, PriceZWG: 37.10, Spec: "SA pine, treated", UpdatedAt: priceListDate},
		{ID: "doorframe-steel", Name: "Steel Door Frame", Category: CategoryTimber, Unit: "each", PriceUSD: 25.00, PriceZWG: 662.50, Spec: "813mm standard", UpdatedAt: priceListDate},
		{ID: "door-flush", Name: "Flush Door", Category: CategoryTimber, Unit: "each", PriceUSD: 32.00, PriceZWG: 848.00, Spec: "813x2032mm hollow core", UpdatedAt: priceListDate},
		{ID: "window-steel", Name: "Steel Window Frame NC2", Category: CategorySteel, Unit: "each", PriceUSD: 48.00, PriceZWG: 1272.00, Spec: "1022x949mm", UpdatedAt: priceListDate},
		{ID: "window-glass", Name: "Window Glass 4mm", Category: CategoryFinishing, Unit: "m2", PriceUSD: 12.00, PriceZWG: 318.00, Spec: "Clear float", UpdatedAt: priceListDate},

		{ID: "paint-pva", Name: "PVA Paint", Category: CategoryFinishing, Unit: "litre", PriceUSD: 3.20, PriceZWG: 84.80, Spec: "Interior/exterior acrylic", UpdatedAt: priceListDate},
		{ID: "paint-undercoat", Name: "Undercoat Primer", Category: CategoryFinishing, Unit: "litre", PriceUSD: 3.80, PriceZWG: 100.70, Spec: "Plaster primer", UpdatedAt: priceListDate},
		{ID: "floor-tiles", Name: "Ceramic Floor Tiles", Category: CategoryFinishing, Unit: "m2", PriceUSD: 8.50, PriceZWG: 225.25, Spec: "400x400mm", UpdatedAt: priceListDate},
		{ID: "tile-adhesive", Name: "Tile Adhesive", Category: CategoryFinishing, Unit: "bag", PriceUSD: 6.00, PriceZWG: 159.00, Spec: "20kg bag", UpdatedAt: priceListDate},

		{ID: "pipe-110", Name: "Sewer Pipe 110mm", Category: CategoryPlumbing, Unit: "length", PriceUSD: 8.00, PriceZWG: 212.00, Spec: "PVC 6m", UpdatedAt: priceListDate},
		{ID: "conduit-20", Name: "Electrical Conduit 20mm", Category: CategoryElectrical, Unit: "length", PriceUSD: 1.20, PriceZWG: 31.80, Spec: "PVC 4m", UpdatedAt: priceListDate},

		{ID: "labor-builder", Name: "Builder", Category: CategoryLabor, Unit: "day", PriceUSD: 15.00, PriceZWG: 397.50, Spec: "Skilled bricklayer daily rate", UpdatedAt: priceListDate},
		{ID: "labor-assistant", Name: "Builder's Assistant", Category: CategoryLabor, Unit: "day", PriceUSD: 8.00, PriceZWG: 212.00, Spec: "General hand daily rate", UpdatedAt: priceListDate},
		{ID: "labor-foreman", Name: "Site Foreman", Category: CategoryLabor, Unit: "day", PriceUSD: 20.00, PriceZWG: 530.00, Spec: "Supervision daily rate", UpdatedAt: priceListDate},
		{ID: "service-food", Name: "Crew Food Allowance", Category: CategoryServices, Unit: "day", PriceUSD: 10.00, PriceZWG: 265.00, Spec: "Meals for crew", UpdatedAt: priceListDate},
		{ID: "service-transport", Name: "Materials Transport", Category: CategoryServices, Unit: "trip", PriceUSD: 35.00, PriceZWG: 927.50, Spec: "7 tonne truck, local", UpdatedAt: priceListDate},
	}
}
