package calculator

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"mainport/internal/model"
)

// Runway configured runway and its reference traffic volume
type Runway struct {
	Name            string  `toml:"name" json:"name"`
	ReferenceVolume float64 `toml:"reference_volume" json:"referenceVolume"`
}

// Params deployment constants of the model
type Params struct {
	BaseSlots int      `json:"baseSlots"`
	Runways   []Runway `json:"runways"`
}

// Engine scenario calculation engine.
// It only reads its reference tables and precomputed baseline, so one Engine can
// serve any number of sessions concurrently.
type Engine struct {
	tables *model.ReferenceTables
	params Params

	runwayNames   []string
	refVolumes    []float64
	defaultShares map[string]float64
	baselineMix   model.HaulMix

	levels *mat.Dense // zones x runways, nil without zones
	normal []float64  // combined level under reference assumptions
}

// NewEngine validates the reference tables against params and computes the
// per-zone baseline ("normal") level once.
func NewEngine(tables *model.ReferenceTables, params Params) (*Engine, error) {
	if tables == nil {
		return nil, fmt.Errorf("reference tables are required")
	}
	if params.BaseSlots <= 0 {
		return nil, fmt.Errorf("base slots must be positive, got %d", params.BaseSlots)
	}
	if len(params.Runways) == 0 {
		return nil, fmt.Errorf("at least one runway is required")
	}

	e := &Engine{
		tables:      tables,
		params:      params,
		runwayNames: make([]string, len(params.Runways)),
		refVolumes:  make([]float64, len(params.Runways)),
	}
	seen := make(map[string]bool, len(params.Runways))
	refWeights := make(map[string]float64, len(params.Runways))
	for i, r := range params.Runways {
		if r.Name == "" || seen[r.Name] {
			return nil, fmt.Errorf("runway %d: name missing or duplicated", i)
		}
		if r.ReferenceVolume <= 0 {
			return nil, fmt.Errorf("runway %s: reference volume must be positive", r.Name)
		}
		seen[r.Name] = true
		e.runwayNames[i] = r.Name
		e.refVolumes[i] = r.ReferenceVolume
		refWeights[r.Name] = r.ReferenceVolume
	}
	e.defaultShares = NormalizeShares(refWeights, e.runwayNames)

	if err := e.checkTables(); err != nil {
		return nil, err
	}

	// Baseline haul mix: the interpolated defaults at BaseSlots, independent of archetype.
	raw := interpolateHaulMix(model.ScenarioArchetype{}, tables.HaulRows, params.BaseSlots, params.BaseSlots)
	e.baselineMix = EnforceHaulMix(raw.ShortPct, raw.MediumPct)

	if len(tables.Zones) > 0 {
		e.levels = mat.NewDense(len(tables.Zones), len(e.runwayNames), nil)
		for i, z := range tables.Zones {
			for j, name := range e.runwayNames {
				l, ok := z.RunwayLevels[name]
				if !ok {
					return nil, fmt.Errorf("zone %d: no level for runway %s", z.ID, name)
				}
				e.levels.Set(i, j, l)
			}
		}
	}

	normal, err := e.combine(sharesVector(e.defaultShares, e.runwayNames))
	if err != nil {
		return nil, fmt.Errorf("baseline noise level: %w", err)
	}
	e.normal = normal

	log.Debug().
		Int("zones", len(tables.Zones)).
		Int("runways", len(e.runwayNames)).
		Interface("baselineMix", e.baselineMix).
		Msg("engine baseline ready")

	return e, nil
}

func (e *Engine) checkTables() error {
	for _, a := range []model.Archetype{model.ArchetypeHubOptimized, model.ArchetypeODOptimized} {
		if _, ok := e.tables.Archetypes[a]; !ok {
			return fmt.Errorf("scenario %q missing from reference tables", a)
		}
	}
	for _, label := range model.RequiredHaulLabels() {
		if _, ok := e.tables.HaulRows[label]; !ok {
			return fmt.Errorf("haul distribution %q missing from reference tables", label)
		}
	}
	for _, label := range []string{model.EconPax, model.EconCargo} {
		if _, ok := e.tables.EconomicFactors[label]; !ok {
			return fmt.Errorf("economic factors %q missing from reference tables", label)
		}
	}
	return nil
}

// combine runs CombineLden over the zone matrix at BaseSlots (slot-neutral).
func (e *Engine) combine(weights []float64) ([]float64, error) {
	base := float64(e.params.BaseSlots)
	return CombineLden(e.levels, weights, e.refVolumes, base, base, false)
}

// Tables reference tables the engine was built from.
func (e *Engine) Tables() *model.ReferenceTables {
	return e.tables
}

// Params deployment constants.
func (e *Engine) Params() Params {
	return e.params
}

// RunwayNames configured runways in order.
func (e *Engine) RunwayNames() []string {
	return append([]string(nil), e.runwayNames...)
}

// DefaultRunwayShares reference runway distribution, normalized.
func (e *Engine) DefaultRunwayShares() map[string]float64 {
	out := make(map[string]float64, len(e.defaultShares))
	for k, v := range e.defaultShares {
		out[k] = v
	}
	return out
}

// BaselineHaulMix haul mix the baseline noise level assumes.
func (e *Engine) BaselineHaulMix() model.HaulMix {
	return e.baselineMix
}

// NormalLevels per-zone baseline levels, in zone order.
func (e *Engine) NormalLevels() []float64 {
	return append([]float64(nil), e.normal...)
}

// Recompute derives the full result for a scenario from scratch.
func (e *Engine) Recompute(st model.ScenarioState) (*model.DerivedResult, error) {
	if err := ValidateState(st); err != nil {
		return nil, err
	}

	freightPct := roundFreight(st.FreightSharePct)
	mix := EnforceHaulMix(st.HaulMix.ShortPct, st.HaulMix.MediumPct)

	segments, kpis := aggregate(e.tables, st.Slots, freightPct, mix)
	result := &model.DerivedResult{
		HaulMix:  mix,
		Segments: segments,
		KPIs:     kpis,
		Zones:    []model.NoiseZoneResult{},
	}

	// Without traffic there is no scenario noise surface to compare.
	if st.Slots == 0 {
		return result, nil
	}

	zones, err := e.zoneResults(st.RunwayShares, st.Slots, mix)
	if err != nil {
		return nil, err
	}
	result.Zones = zones
	result.KPIs.HomesAffected = homesAffected(zones)
	return result, nil
}

// zoneResults scenario level and diff per zone:
// combine(shares) + 10log10(slots/base) + fleet-mix delta - normal.
func (e *Engine) zoneResults(shares map[string]float64, slots int, mix model.HaulMix) ([]model.NoiseZoneResult, error) {
	weights := sharesVector(NormalizeShares(shares, e.runwayNames), e.runwayNames)
	combined, err := e.combine(weights)
	if err != nil {
		return nil, err
	}

	slotDelta, err := SlotScaleDelta(float64(slots), float64(e.params.BaseSlots))
	if err != nil {
		return nil, err
	}
	fleetDelta, err := DeltaLdenFromHaulMix(fleetCounts(e.baselineMix), fleetCounts(mix))
	if err != nil {
		return nil, err
	}

	out := make([]model.NoiseZoneResult, len(combined))
	for i, level := range combined {
		scenario := level + slotDelta + fleetDelta
		out[i] = model.NoiseZoneResult{
			ZoneID:     e.tables.Zones[i].ID,
			Population: e.tables.Zones[i].Population,
			Level:      scenario,
			Diff:       scenario - e.normal[i],
		}
	}
	return out, nil
}

func fleetCounts(mix model.HaulMix) FleetCounts {
	return FleetCounts{
		Short:  float64(mix.ShortPct),
		Medium: float64(mix.MediumPct),
		Long:   float64(mix.LongPct),
	}
}

func homesAffected(zones []model.NoiseZoneResult) int {
	var total float64
	for _, z := range zones {
		if z.Diff < HomesThreshold {
			total += z.Population
		}
	}
	return int(total)
}

// CalculateKPIs stateless entry point. The runway distribution is the reference one;
// longPct is accepted for symmetry but re-derived from short and medium.
func (e *Engine) CalculateKPIs(slots int, freightPct float64, shortPct, mediumPct, longPct int) (*model.DerivedResult, error) {
	st := model.ScenarioState{
		Title:           model.DefaultTitle,
		Slots:           slots,
		FreightSharePct: freightPct,
		Archetype:       model.ArchetypeCustom,
		HaulMix:         model.HaulMix{ShortPct: shortPct, MediumPct: mediumPct},
		RunwayShares:    e.DefaultRunwayShares(),
	}
	return e.Recompute(st)
}
