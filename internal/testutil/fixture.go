// Package testutil small reference data sets for handler and server tests.
package testutil

import (
	"github.com/paulmach/orb"

	"mainport/internal/model"
	"mainport/internal/service/calculator"
)

// BaseSlots slot count of the fixture deployment
const BaseSlots = 478000

// Runways the six Schiphol runways with their reference volumes
var Runways = []calculator.Runway{
	{Name: "Polderbaan", ReferenceVolume: 763},
	{Name: "Zwanenburgbaan", ReferenceVolume: 2058},
	{Name: "Buitenveldertbaan", ReferenceVolume: 1944},
	{Name: "Oostbaan", ReferenceVolume: 467},
	{Name: "Aalsmeerbaan", ReferenceVolume: 1322},
	{Name: "Kaagbaan", ReferenceVolume: 3110},
}

// Params engine parameters matching Tables
func Params() calculator.Params {
	return calculator.Params{BaseSlots: BaseSlots, Runways: Runways}
}

func zone(id int, population, oostbaan, others float64, geom orb.Geometry) model.NoiseZone {
	levels := make(map[string]float64, len(Runways))
	for _, r := range Runways {
		levels[r.Name] = others
	}
	levels["Oostbaan"] = oostbaan
	return model.NoiseZone{ID: id, Population: population, RunwayLevels: levels, Geometry: geom}
}

func byHaul(short, medium, long float64) map[model.HaulLength]float64 {
	return map[model.HaulLength]float64{model.HaulShort: short, model.HaulMedium: medium, model.HaulLong: long}
}

// Tables complete reference data with two zones. Zone 0 is quiet on the
// Oostbaan, zone 1 is loud on it.
func Tables() *model.ReferenceTables {
	return &model.ReferenceTables{
		Archetypes: map[model.Archetype]model.ScenarioArchetype{
			model.ArchetypeHubOptimized: {Name: model.ArchetypeHubOptimized, Increase: byHaul(300, 300, 400), Decrease: byHaul(500, 300, 200)},
			model.ArchetypeODOptimized:  {Name: model.ArchetypeODOptimized, Increase: byHaul(500, 300, 200), Decrease: byHaul(300, 300, 400)},
		},
		HaulRows: map[string]model.HaulDistributionRow{
			"short haul pax":    {Label: "short haul pax", BaseSlotFrac: 0.40, NumPassengers: 150, CargoVolume: 0.5, FracTourist: 0.6, FracBusiness: 0.2},
			"medium haul pax":   {Label: "medium haul pax", BaseSlotFrac: 0.35, NumPassengers: 180, CargoVolume: 1.0, FracTourist: 0.5, FracBusiness: 0.3},
			"long haul pax":     {Label: "long haul pax", BaseSlotFrac: 0.25, NumPassengers: 300, CargoVolume: 10.0, FracTourist: 0.4, FracBusiness: 0.4},
			"short haul cargo":  {Label: "short haul cargo", CargoVolume: 20},
			"medium haul cargo": {Label: "medium haul cargo", CargoVolume: 40},
			"long haul cargo":   {Label: "long haul cargo", CargoVolume: 100},
		},
		EconomicFactors: map[string]model.EconomicFactorRow{
			"pax":   {Label: "pax", AddedValueBase: 30, AddedValueTourist: 50, AddedValueBusiness: 80, EmploymentBase: 0.0005, EmploymentTourist: 0.0002, EmploymentBusiness: 0.0003},
			"cargo": {Label: "cargo", AddedValueBase: 200, EmploymentBase: 0.002},
		},
		Zones: []model.NoiseZone{
			zone(0, 1000, 20, 50, orb.Point{4.70, 52.30}),
			zone(1, 2000, 70, 40, orb.Point{4.75, 52.35}),
		},
		Governance: []model.GovernanceScore{
			{Country: "Netherlands", ISO3: "NLD", Score: 0.91},
		},
	}
}

// Engine builds an engine over Tables.
func Engine() (*calculator.Engine, error) {
	return calculator.NewEngine(Tables(), Params())
}
