package model

import "github.com/paulmach/orb"

// HaulLength flight distance category
type HaulLength string

const (
	HaulShort  HaulLength = "Short"
	HaulMedium HaulLength = "Medium"
	HaulLong   HaulLength = "Long"
)

// HaulLengths fixed evaluation order
var HaulLengths = []HaulLength{HaulShort, HaulMedium, HaulLong}

// TrafficType passenger or dedicated freighter movements
type TrafficType string

const (
	TrafficPassengers TrafficType = "Passengers"
	TrafficFreight    TrafficType = "Freight"
)

// TrafficTypes fixed evaluation order
var TrafficTypes = []TrafficType{TrafficPassengers, TrafficFreight}

// Archetype named scenario template
type Archetype string

const (
	ArchetypeHubOptimized Archetype = "Hub optimized"
	ArchetypeODOptimized  Archetype = "OD optimized"
	ArchetypeCustom       Archetype = "Custom"
)

// Archetypes selectable scenarios, in menu order
var Archetypes = []Archetype{ArchetypeHubOptimized, ArchetypeODOptimized, ArchetypeCustom}

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeHubOptimized, ArchetypeODOptimized, ArchetypeCustom:
		return true
	}
	return false
}

// ScenarioArchetype interpolation coefficients, in slots per 1000 slots of delta
type ScenarioArchetype struct {
	Name     Archetype              `json:"name"`
	Increase map[HaulLength]float64 `json:"increase"` // applied above the base slot count
	Decrease map[HaulLength]float64 `json:"decrease"` // applied below the base slot count
}

// HaulDistributionRow per-slot characteristics of one haul category
type HaulDistributionRow struct {
	Label         string  `json:"label"` // e.g. "short haul pax"
	BaseSlotFrac  float64 `json:"baseSlotFrac"`
	NumPassengers float64 `json:"numPassengers"` // passengers per slot
	CargoVolume   float64 `json:"cargoVolume"`   // tons per slot
	FracTourist   float64 `json:"fracTourist"`
	FracBusiness  float64 `json:"fracBusiness"`
}

// EconomicFactorRow added value and employment per passenger or cargo unit
type EconomicFactorRow struct {
	Label              string  `json:"label"` // "pax" or "cargo"
	AddedValueBase     float64 `json:"addedValueBase"`
	AddedValueTourist  float64 `json:"addedValueTourist"`
	AddedValueBusiness float64 `json:"addedValueBusiness"`
	EmploymentBase     float64 `json:"employmentBase"`
	EmploymentTourist  float64 `json:"employmentTourist"`
	EmploymentBusiness float64 `json:"employmentBusiness"`
}

// NoiseZone one geographic polygon with per-runway exposure levels
type NoiseZone struct {
	ID           int                `json:"id"`
	Geometry     orb.Geometry       `json:"-"` // rendering only
	Population   float64            `json:"population"`
	RunwayLevels map[string]float64 `json:"runwayLevels"` // Lden per runway name
	BaselineDiff float64            `json:"baselineDiff"` // Lden_one - Lden_two, 0 when absent
}

// GovernanceScore country stability score (0-1)
type GovernanceScore struct {
	Country string  `json:"country"`
	ISO3    string  `json:"iso3"`
	Score   float64 `json:"score"`
}

// ReferenceTables static tables, loaded once and never mutated
type ReferenceTables struct {
	Archetypes      map[Archetype]ScenarioArchetype `json:"archetypes"`
	HaulRows        map[string]HaulDistributionRow  `json:"haulRows"`
	EconomicFactors map[string]EconomicFactorRow    `json:"economicFactors"`
	Zones           []NoiseZone                     `json:"zones"`
	Governance      []GovernanceScore               `json:"governance"`
}

// Reference category labels
const (
	EconPax   = "pax"
	EconCargo = "cargo"
)

// HaulLabel builds the distribution row label for a segment, e.g. "short haul pax".
func HaulLabel(t TrafficType, h HaulLength) string {
	kind := "pax"
	if t == TrafficFreight {
		kind = "cargo"
	}
	return haulPrefix(h) + " haul " + kind
}

func haulPrefix(h HaulLength) string {
	switch h {
	case HaulShort:
		return "short"
	case HaulMedium:
		return "medium"
	default:
		return "long"
	}
}

// RequiredHaulLabels all distribution rows the engine looks up
func RequiredHaulLabels() []string {
	labels := make([]string, 0, len(TrafficTypes)*len(HaulLengths))
	for _, t := range TrafficTypes {
		for _, h := range HaulLengths {
			labels = append(labels, HaulLabel(t, h))
		}
	}
	return labels
}

// ArchetypeColumn scenario sheet column name, e.g. "short haul increase".
func ArchetypeColumn(h HaulLength, increase bool) string {
	if increase {
		return haulPrefix(h) + " haul increase"
	}
	return haulPrefix(h) + " haul decrease"
}
