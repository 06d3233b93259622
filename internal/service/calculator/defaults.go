package calculator

import (
	"math"

	"mainport/internal/model"
)

// ScenarioDefaults derives the default haul mix for an archetype at the given slot count.
//
// For Hub/OD optimized each haul length starts from its base share of BaseSlots and
// moves by the archetype's increase/decrease rate per 1000 slots of difference. The
// percentages are truncated independently, so they need not add up to 100; callers
// restore the invariant with EnforceHaulMix, which makes long the remainder.
// For Custom the current mix is returned with long re-derived.
func (e *Engine) ScenarioDefaults(archetype model.Archetype, slots int, current model.HaulMix) (model.HaulMix, error) {
	if archetype == model.ArchetypeCustom {
		return model.HaulMix{
			ShortPct:  current.ShortPct,
			MediumPct: current.MediumPct,
			LongPct:   clampInt(100-current.ShortPct-current.MediumPct, 0, 100),
		}, nil
	}

	arch, ok := e.tables.Archetypes[archetype]
	if !ok {
		return model.HaulMix{}, invalidf("unknown scenario %q", archetype)
	}
	return interpolateHaulMix(arch, e.tables.HaulRows, e.params.BaseSlots, slots), nil
}

func interpolateHaulMix(arch model.ScenarioArchetype, rows map[string]model.HaulDistributionRow, baseSlots, slots int) model.HaulMix {
	if slots <= 0 {
		return model.HaulMix{}
	}

	base := float64(baseSlots)
	s := float64(slots)
	pct := func(h model.HaulLength) int {
		row := rows[model.HaulLabel(model.TrafficPassengers, h)]
		hSlots := base*row.BaseSlotFrac +
			math.Max(s-base, 0)*arch.Increase[h]/1000 +
			math.Max(base-s, 0)*arch.Decrease[h]/1000
		return int(math.Trunc(100 * hSlots / s))
	}

	return model.HaulMix{
		ShortPct:  pct(model.HaulShort),
		MediumPct: pct(model.HaulMedium),
		LongPct:   pct(model.HaulLong),
	}
}

// EnforceHaulMix restores short+medium+long == 100.
// Short is clamped to [0,100] first, medium gives way on overflow, long takes the remainder.
func EnforceHaulMix(shortPct, mediumPct int) model.HaulMix {
	s := clampInt(shortPct, 0, 100)
	m := clampInt(mediumPct, 0, 100)
	if s+m > 100 {
		m = max(0, 100-s)
	}
	return model.HaulMix{
		ShortPct:  s,
		MediumPct: m,
		LongPct:   clampInt(100-s-m, 0, 100),
	}
}

func clampInt(x, lo, hi int) int {
	return max(lo, min(hi, x))
}
