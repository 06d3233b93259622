package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Empirical per-movement level differences relative to a short-haul movement (dB).
const (
	DeltaLMediumMinusShort = 0.2838603921484293
	DeltaLLongMinusShort   = 1.3974990345316523
)

// HomesThreshold zones whose diff drops below this count as improved (dB)
const HomesThreshold = -1.0

// CombineLden combines per-runway Lden levels (rows: zones, cols: runways) into one
// level per zone, summing in the energy domain.
//
// Each (optionally normalized) weight is rescaled to
//
//	sum(refVolumes)/baseSlots * w[i] * slots / refVolumes[i]
//
// so that share-based weights line up with the volume-based reference distribution
// baked into the exposure columns. A non-positive energy sum is an error.
func CombineLden(levels *mat.Dense, weights, refVolumes []float64, baseSlots, slots float64, normalize bool) ([]float64, error) {
	if levels == nil {
		return []float64{}, nil
	}
	rows, cols := levels.Dims()
	if len(weights) != cols || len(refVolumes) != cols {
		return nil, invalidf("got %d weights and %d reference volumes for %d runways", len(weights), len(refVolumes), cols)
	}
	if baseSlots <= 0 {
		return nil, invalidf("base slots must be positive, got %v", baseSlots)
	}

	w := weights
	if normalize {
		w = NormalizeWeights(weights)
	}

	refTotal := floats.Sum(refVolumes)
	corrected := mat.NewVecDense(cols, nil)
	for i, weight := range w {
		if refVolumes[i] <= 0 {
			return nil, invalidf("reference volume for runway %d must be positive", i)
		}
		corrected.SetVec(i, (refTotal/baseSlots)*weight*slots/refVolumes[i])
	}

	var energy mat.Dense
	energy.Apply(func(_, _ int, l float64) float64 {
		return math.Pow(10, l/10)
	}, levels)

	sum := mat.NewVecDense(rows, nil)
	sum.MulVec(&energy, corrected)

	out := make([]float64, rows)
	for i := range out {
		e := sum.AtVec(i)
		if !(e > 0) || math.IsInf(e, 0) {
			return nil, invalidf("zone %d: energy total %v is not positive", i, e)
		}
		out[i] = 10 * math.Log10(e)
	}
	return out, nil
}

// SlotScaleDelta level change from scaling total traffic from baseSlots to slots.
func SlotScaleDelta(slots, baseSlots float64) (float64, error) {
	if slots <= 0 || baseSlots <= 0 {
		return 0, invalidf("slot counts must be positive, got %v and %v", slots, baseSlots)
	}
	return 10 * math.Log10(slots/baseSlots), nil
}

// FleetCounts movements per haul bucket
type FleetCounts struct {
	Short  float64
	Medium float64
	Long   float64
}

// FleetCalibration per-movement level offsets of medium and long haul
type FleetCalibration struct {
	MediumMinusShort float64
	LongMinusShort   float64
}

// DefaultFleetCalibration empirical fleet calibration
var DefaultFleetCalibration = FleetCalibration{
	MediumMinusShort: DeltaLMediumMinusShort,
	LongMinusShort:   DeltaLLongMinusShort,
}

// Delta returns the Lden change caused by moving from base to next traffic counts.
func (c FleetCalibration) Delta(base, next FleetCounts) (float64, error) {
	rM := math.Pow(10, c.MediumMinusShort/10)
	rL := math.Pow(10, c.LongMinusShort/10)

	eBase := base.Short + rM*base.Medium + rL*base.Long
	eNew := next.Short + rM*next.Medium + rL*next.Long
	if eBase <= 0 || eNew <= 0 {
		return 0, invalidf("energy totals must be positive, check slot counts")
	}
	return 10 * math.Log10(eNew/eBase), nil
}

// DeltaLdenFromHaulMix Delta with the default calibration.
func DeltaLdenFromHaulMix(base, next FleetCounts) (float64, error) {
	return DefaultFleetCalibration.Delta(base, next)
}
