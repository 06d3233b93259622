package model

// HaulMix haul length percentages; Long is always the remainder
type HaulMix struct {
	ShortPct  int `json:"shortPct" yaml:"shortPct"`
	MediumPct int `json:"mediumPct" yaml:"mediumPct"`
	LongPct   int `json:"longPct" yaml:"longPct"`
}

// Pct returns the percentage for one haul length.
func (m HaulMix) Pct(h HaulLength) int {
	switch h {
	case HaulShort:
		return m.ShortPct
	case HaulMedium:
		return m.MediumPct
	default:
		return m.LongPct
	}
}

// ScenarioState user levers of one session
type ScenarioState struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Slots           int                `json:"slots"`
	FreightSharePct float64            `json:"freightShare"`
	Archetype       Archetype          `json:"scenario"`
	HaulMix         HaulMix            `json:"haulMix"`
	RunwayShares    map[string]float64 `json:"runwayShares"` // normalized, sums to 1
}

// Clone returns a deep copy.
func (s ScenarioState) Clone() ScenarioState {
	out := s
	out.RunwayShares = make(map[string]float64, len(s.RunwayShares))
	for k, v := range s.RunwayShares {
		out.RunwayShares[k] = v
	}
	return out
}

// ScenarioPatch partial lever update; nil fields are left untouched
type ScenarioPatch struct {
	Title           *string    `json:"title,omitempty" yaml:"title,omitempty"`
	Slots           *int       `json:"slots,omitempty" yaml:"slots,omitempty"`
	FreightSharePct *float64   `json:"freightShare,omitempty" yaml:"freightShare,omitempty"`
	Archetype       *Archetype `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	ShortPct        *int       `json:"shortPct,omitempty" yaml:"shortPct,omitempty"`
	MediumPct       *int       `json:"mediumPct,omitempty" yaml:"mediumPct,omitempty"`
}

// DefaultTitle title used for new and reset scenarios
const DefaultTitle = "My Airport Scenario"
