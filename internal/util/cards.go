package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mainport/internal/model"
)

// KPICard one formatted headline number
type KPICard struct {
	Key   string  `json:"key"`
	Title string  `json:"title"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
}

// Cards formats the eight headline KPIs in dashboard order (two rows of four).
func Cards(k model.HeadlineKPIs) []KPICard {
	p := message.NewPrinter(language.English)

	return []KPICard{
		{Key: "homes", Title: "Lden lowered > 1dB (# people)", Value: p.Sprintf("%d", k.HomesAffected), Raw: float64(k.HomesAffected)},
		{Key: "va_direct", Title: "Added value – direct (€m)", Value: p.Sprintf("%.1f", k.ValueDirect), Raw: k.ValueDirect},
		{Key: "va_indirect", Title: "Added value – indirect (€m)", Value: p.Sprintf("%.1f", k.ValueIndirect), Raw: k.ValueIndirect},
		{Key: "total_pax", Title: "Total passengers (millions)", Value: p.Sprintf("%.3f", k.TotalPax), Raw: k.TotalPax},
		{Key: "jobs_direct", Title: "Employment – direct (jobs)", Value: p.Sprintf("%d", truncJobs(k.JobsDirect)), Raw: k.JobsDirect},
		{Key: "jobs_indirect", Title: "Employment – indirect (jobs)", Value: p.Sprintf("%d", truncJobs(k.JobsIndirect)), Raw: k.JobsIndirect},
		{Key: "total_cargo_freight", Title: "Freight Cargo volume (M tons)", Value: p.Sprintf("%.4f", k.TotalCargoFreight), Raw: k.TotalCargoFreight},
		{Key: "total_cargo_belly", Title: "Belly Cargo volume (M tons)", Value: p.Sprintf("%.3f", k.TotalCargoBelly), Raw: k.TotalCargoBelly},
	}
}

// truncJobs whole jobs, fraction dropped
func truncJobs(v float64) int64 {
	return int64(v)
}
