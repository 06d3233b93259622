package calculator

import (
	"fmt"
	"math"
	"strings"

	"mainport/internal/model"
)

// Default lever values of a new or reset scenario.
const (
	DefaultFreightSharePct = 5.0
	DefaultArchetype       = model.ArchetypeHubOptimized
)

// DefaultState scenario at base slots with reference runway shares.
func (e *Engine) DefaultState() model.ScenarioState {
	st := model.ScenarioState{
		Title:           model.DefaultTitle,
		Slots:           e.params.BaseSlots,
		FreightSharePct: DefaultFreightSharePct,
		Archetype:       DefaultArchetype,
		RunwayShares:    e.DefaultRunwayShares(),
	}
	// Hub optimized is always present (checked in NewEngine).
	st.HaulMix, _ = e.resolveHaulMix(st)
	return st
}

// Reset returns the default scenario, keeping the session ID.
func (e *Engine) Reset(st model.ScenarioState) model.ScenarioState {
	out := e.DefaultState()
	out.ID = st.ID
	return out
}

// resolveHaulMix re-derives the haul mix after a top lever changed.
func (e *Engine) resolveHaulMix(st model.ScenarioState) (model.HaulMix, error) {
	raw, err := e.ScenarioDefaults(st.Archetype, st.Slots, st.HaulMix)
	if err != nil {
		return model.HaulMix{}, err
	}
	return EnforceHaulMix(raw.ShortPct, raw.MediumPct), nil
}

// ApplyPatch applies a lever update and returns the new state; st is not modified.
//
// Changing slots, freight share or scenario re-derives the haul mix from the scenario.
// Haul shares can only be edited in Custom; medium yields when short+medium exceeds 100.
// Nothing is applied when any field is invalid.
func (e *Engine) ApplyPatch(st model.ScenarioState, p model.ScenarioPatch) (model.ScenarioState, error) {
	next := st.Clone()

	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Slots != nil {
		next.Slots = *p.Slots
	}
	if p.FreightSharePct != nil {
		next.FreightSharePct = *p.FreightSharePct
	}
	if p.Archetype != nil {
		if !p.Archetype.Valid() {
			return st, invalidf("unknown scenario %q", *p.Archetype)
		}
		next.Archetype = *p.Archetype
	}
	if err := checkLevers(next.Slots, next.FreightSharePct, 0, 0); err != nil {
		return st, err
	}

	if p.Slots != nil || p.FreightSharePct != nil || p.Archetype != nil {
		mix, err := e.resolveHaulMix(next)
		if err != nil {
			return st, err
		}
		next.HaulMix = mix
	}

	if p.ShortPct != nil || p.MediumPct != nil {
		if next.Archetype != model.ArchetypeCustom {
			return st, ErrHaulMixLocked
		}
		short, medium := next.HaulMix.ShortPct, next.HaulMix.MediumPct
		if p.ShortPct != nil {
			short = *p.ShortPct
		}
		if p.MediumPct != nil {
			medium = *p.MediumPct
		}
		if err := checkLevers(next.Slots, next.FreightSharePct, short, medium); err != nil {
			return st, err
		}
		next.HaulMix = EnforceHaulMix(short, medium)
	}

	return next, nil
}

// SetRunwayShares replaces the runway distribution with the normalized weights.
// Runways left out get weight zero; negative weights count as zero.
func (e *Engine) SetRunwayShares(st model.ScenarioState, weights map[string]float64) (model.ScenarioState, error) {
	known := make(map[string]bool, len(e.runwayNames))
	for _, name := range e.runwayNames {
		known[name] = true
	}
	for name, w := range weights {
		if !known[name] {
			return st, fmt.Errorf("%w: %s", ErrUnknownRunway, name)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return st, invalidf("runway %s: weight must be finite", name)
		}
	}

	next := st.Clone()
	next.RunwayShares = NormalizeShares(weights, e.runwayNames)
	return next, nil
}
