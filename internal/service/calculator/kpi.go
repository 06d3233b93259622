package calculator

import (
	"sort"

	"mainport/internal/model"
)

// IndirectMultiplier economic ripple multiplier; indirect = direct x (IndirectMultiplier-1)
const IndirectMultiplier = 1.9

// segmentRates per-slot multipliers of one segment
type segmentRates struct {
	addedValue float64
	employment float64
	pax        float64
	cargo      float64
}

// ratesFor derives per-slot multipliers from the reference tables.
// Passenger slots earn per passenger (flat plus tourist/business supplements) and
// for belly cargo; freighter slots only for cargo.
func ratesFor(t *model.ReferenceTables, traffic model.TrafficType, h model.HaulLength) segmentRates {
	cargo := t.EconomicFactors[model.EconCargo]
	row := t.HaulRows[model.HaulLabel(traffic, h)]

	if traffic == model.TrafficFreight {
		return segmentRates{
			addedValue: row.CargoVolume * cargo.AddedValueBase,
			employment: row.CargoVolume * cargo.EmploymentBase,
			cargo:      row.CargoVolume,
		}
	}

	pax := t.EconomicFactors[model.EconPax]
	return segmentRates{
		addedValue: row.NumPassengers*pax.AddedValueBase +
			row.NumPassengers*row.FracTourist*pax.AddedValueTourist +
			row.NumPassengers*row.FracBusiness*pax.AddedValueBusiness +
			row.CargoVolume*cargo.AddedValueBase,
		employment: row.NumPassengers*pax.EmploymentBase +
			row.NumPassengers*row.FracTourist*pax.EmploymentTourist +
			row.NumPassengers*row.FracBusiness*pax.EmploymentBusiness +
			row.CargoVolume*cargo.EmploymentBase,
		pax:   row.NumPassengers,
		cargo: row.CargoVolume,
	}
}

// aggregate builds the segment table and every headline KPI except HomesAffected.
// Inputs must already be validated; the haul mix must satisfy the sum-to-100 invariant.
func aggregate(t *model.ReferenceTables, slots, freightPct int, mix model.HaulMix) ([]model.SegmentRow, model.HeadlineKPIs) {
	passengersPct := max(0, 100-freightPct)

	segments := make([]model.SegmentRow, 0, len(model.TrafficTypes)*len(model.HaulLengths))
	var valueDirect, jobsDirect float64

	for _, traffic := range model.TrafficTypes {
		top := passengersPct
		if traffic == model.TrafficFreight {
			top = freightPct
		}
		for _, h := range model.HaulLengths {
			share := float64(max(0, top)) / 100 * float64(max(0, mix.Pct(h))) / 100
			segSlots := max(0.0, float64(slots)*share)
			rates := ratesFor(t, traffic, h)

			row := model.SegmentRow{
				Segment:     string(traffic) + " - " + string(h),
				TrafficType: traffic,
				HaulLength:  h,
				Slots:       segSlots,
				AddedValue:  segSlots * rates.addedValue,
				Jobs:        segSlots * rates.employment,
				Pax:         segSlots * rates.pax / 1e6,
				Cargo:       segSlots * rates.cargo / 1e6,
			}
			valueDirect += row.AddedValue
			jobsDirect += row.Jobs
			segments = append(segments, row)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].AddedValue > segments[j].AddedValue
	})

	kpis := model.HeadlineKPIs{
		ValueDirect:   valueDirect / 1e6,
		ValueIndirect: valueDirect * (IndirectMultiplier - 1) / 1e6,
		JobsDirect:    jobsDirect,
		JobsIndirect:  jobsDirect * (IndirectMultiplier - 1),
	}
	kpis.TotalCargoFreight, kpis.TotalCargoBelly, kpis.TotalPax = volumeTotals(t, slots, freightPct, mix)
	return segments, kpis
}

// volumeTotals recomputes freight cargo, belly cargo and passengers straight from
// the levers rather than from the segment rows (millions).
func volumeTotals(t *model.ReferenceTables, slots, freightPct int, mix model.HaulMix) (freight, belly, pax float64) {
	s := float64(slots)
	paxPct := 100 - freightPct
	longPct := 100 - (mix.ShortPct + mix.MediumPct)

	cargoRow := func(h model.HaulLength) model.HaulDistributionRow {
		return t.HaulRows[model.HaulLabel(model.TrafficFreight, h)]
	}
	paxRow := func(h model.HaulLength) model.HaulDistributionRow {
		return t.HaulRows[model.HaulLabel(model.TrafficPassengers, h)]
	}

	freight = s*(float64(freightPct*mix.ShortPct)/10000)*cargoRow(model.HaulShort).CargoVolume +
		s*(float64(freightPct*mix.MediumPct)/10000)*cargoRow(model.HaulMedium).CargoVolume +
		s*(float64(freightPct*longPct)/10000)*cargoRow(model.HaulLong).CargoVolume

	belly = s*(float64(paxPct*mix.ShortPct)/10000)*paxRow(model.HaulShort).CargoVolume +
		s*(float64(paxPct*mix.MediumPct)/10000)*paxRow(model.HaulMedium).CargoVolume +
		s*(float64(paxPct*longPct)/10000)*paxRow(model.HaulLong).CargoVolume

	pax = s*(float64(paxPct*mix.ShortPct)/10000)*paxRow(model.HaulShort).NumPassengers +
		s*(float64(paxPct*mix.MediumPct)/10000)*paxRow(model.HaulMedium).NumPassengers +
		s*(float64(paxPct*longPct)/10000)*paxRow(model.HaulLong).NumPassengers

	return freight / 1e6, belly / 1e6, pax / 1e6
}
