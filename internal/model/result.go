package model

// SegmentRow one traffic type x haul length combination
type SegmentRow struct {
	Segment     string      `json:"segment"` // "Passengers - Short"
	TrafficType TrafficType `json:"trafficType"`
	HaulLength  HaulLength  `json:"haulLength"`
	Slots       float64     `json:"slots"`
	AddedValue  float64     `json:"addedValue"` // euro
	Jobs        float64     `json:"jobs"`
	Pax         float64     `json:"pax"`   // millions
	Cargo       float64     `json:"cargo"` // million tons
}

// HeadlineKPIs scalar aggregates shown on the KPI cards
type HeadlineKPIs struct {
	HomesAffected     int     `json:"homesAffected"` // people in zones improved by more than 1 dB
	ValueDirect       float64 `json:"valueDirect"`   // euro millions
	ValueIndirect     float64 `json:"valueIndirect"` // euro millions
	JobsDirect        float64 `json:"jobsDirect"`
	JobsIndirect      float64 `json:"jobsIndirect"`
	TotalPax          float64 `json:"totalPax"`          // millions
	TotalCargoFreight float64 `json:"totalCargoFreight"` // million tons
	TotalCargoBelly   float64 `json:"totalCargoBelly"`   // million tons
}

// NoiseZoneResult scenario exposure of one zone
type NoiseZoneResult struct {
	ZoneID     int     `json:"zoneId"`
	Population float64 `json:"population"`
	Level      float64 `json:"level"` // scenario combined Lden
	Diff       float64 `json:"diff"`  // scenario minus normal
}

// DerivedResult everything recomputed from (ReferenceTables, ScenarioState)
type DerivedResult struct {
	HaulMix  HaulMix           `json:"haulMix"`
	Segments []SegmentRow      `json:"segments"` // sorted by added value, descending
	KPIs     HeadlineKPIs      `json:"kpis"`
	Zones    []NoiseZoneResult `json:"zones"` // empty when there is no traffic
}
