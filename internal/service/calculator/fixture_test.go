package calculator

import (
	"testing"

	"mainport/internal/model"
)

var testRunways = []Runway{
	{Name: "Polderbaan", ReferenceVolume: 763},
	{Name: "Zwanenburgbaan", ReferenceVolume: 2058},
	{Name: "Buitenveldertbaan", ReferenceVolume: 1944},
	{Name: "Oostbaan", ReferenceVolume: 467},
	{Name: "Aalsmeerbaan", ReferenceVolume: 1322},
	{Name: "Kaagbaan", ReferenceVolume: 3110},
}

func testParams() Params {
	return Params{BaseSlots: 478000, Runways: testRunways}
}

func zone(id int, population float64, oostbaan, others float64) model.NoiseZone {
	levels := make(map[string]float64, len(testRunways))
	for _, r := range testRunways {
		levels[r.Name] = others
	}
	levels["Oostbaan"] = oostbaan
	return model.NoiseZone{ID: id, Population: population, RunwayLevels: levels}
}

func haulLengthMap(short, medium, long float64) map[model.HaulLength]float64 {
	return map[model.HaulLength]float64{
		model.HaulShort:  short,
		model.HaulMedium: medium,
		model.HaulLong:   long,
	}
}

// testTables small but complete reference data set.
func testTables() *model.ReferenceTables {
	return &model.ReferenceTables{
		Archetypes: map[model.Archetype]model.ScenarioArchetype{
			model.ArchetypeHubOptimized: {
				Name:     model.ArchetypeHubOptimized,
				Increase: haulLengthMap(300, 300, 400),
				Decrease: haulLengthMap(500, 300, 200),
			},
			model.ArchetypeODOptimized: {
				Name:     model.ArchetypeODOptimized,
				Increase: haulLengthMap(500, 300, 200),
				Decrease: haulLengthMap(300, 300, 400),
			},
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
			"pax": {
				Label:              "pax",
				AddedValueBase:     30,
				AddedValueTourist:  50,
				AddedValueBusiness: 80,
				EmploymentBase:     0.0005,
				EmploymentTourist:  0.0002,
				EmploymentBusiness: 0.0003,
			},
			"cargo": {Label: "cargo", AddedValueBase: 200, EmploymentBase: 0.002},
		},
		Zones: []model.NoiseZone{
			zone(1, 1000, 20, 50),
			zone(2, 2000, 70, 40),
			zone(3, 500, 55, 55),
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(testTables(), testParams())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

// floatEquals approximate equality
func floatEquals(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
