package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"mainport/internal/model"
)

// Sheet names of the scenario export
const (
	SheetInputs   = "Inputs"
	SheetKPIs     = "KPIs"
	SheetSegments = "Segments"
	SheetZones    = "Zones"
)

// Exporter writes scenario results to a workbook
type Exporter struct{}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds a workbook with the scenario inputs, headline KPIs, segment table
// and per-zone noise results.
func (e *Exporter) Export(st model.ScenarioState, res *model.DerivedResult) (*excelize.File, error) {
	if res == nil {
		return nil, fmt.Errorf("no result to export")
	}

	f := excelize.NewFile()
	if err := e.fill(f, st, res); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// colWidth column range and width of one sheet
type colWidth struct {
	sheet, from, to string
	width           float64
}

var colWidths = []colWidth{
	{SheetInputs, "A", "A", 28},
	{SheetKPIs, "A", "A", 30},
	{SheetKPIs, "C", "C", 16},
	{SheetSegments, "A", "A", 22},
	{SheetSegments, "B", "H", 16},
}

func (e *Exporter) fill(f *excelize.File, st model.ScenarioState, res *model.DerivedResult) error {
	if err := f.SetSheetName("Sheet1", SheetInputs); err != nil {
		return err
	}
	for _, name := range []string{SheetKPIs, SheetSegments, SheetZones} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	inputs := [][]interface{}{
		{"Lever", "Value"},
		{"Title", st.Title},
		{"Slots", st.Slots},
		{"Freight share (%)", st.FreightSharePct},
		{"Scenario", string(st.Archetype)},
		{"Short haul (%)", res.HaulMix.ShortPct},
		{"Medium haul (%)", res.HaulMix.MediumPct},
		{"Long haul (%)", res.HaulMix.LongPct},
	}
	runways := make([]string, 0, len(st.RunwayShares))
	for name := range st.RunwayShares {
		runways = append(runways, name)
	}
	sort.Strings(runways)
	for _, name := range runways {
		inputs = append(inputs, []interface{}{"Runway share " + name, st.RunwayShares[name]})
	}

	k := res.KPIs
	kpis := [][]interface{}{
		{"KPI", "Value", "Unit"},
		{"Homes with noise reduction", k.HomesAffected, "people"},
		{"Direct added value", k.ValueDirect, "EUR million"},
		{"Indirect added value", k.ValueIndirect, "EUR million"},
		{"Direct employment", k.JobsDirect, "jobs"},
		{"Indirect employment", k.JobsIndirect, "jobs"},
		{"Passengers", k.TotalPax, "million"},
		{"Freighter cargo", k.TotalCargoFreight, "million tonnes"},
		{"Belly cargo", k.TotalCargoBelly, "million tonnes"},
	}

	segments := [][]interface{}{
		{"Segment", "Traffic type", "Haul length", "Slots", "Added value (EUR)", "Jobs", "Passengers (m)", "Cargo (Mt)"},
	}
	for _, s := range res.Segments {
		segments = append(segments, []interface{}{
			s.Segment, string(s.TrafficType), string(s.HaulLength), s.Slots, s.AddedValue, s.Jobs, s.Pax, s.Cargo,
		})
	}

	zones := [][]interface{}{
		{"Zone", "Population", "Level (dB)", "Diff (dB)"},
	}
	for _, z := range res.Zones {
		zones = append(zones, []interface{}{z.ZoneID, z.Population, z.Level, z.Diff})
	}

	for sheet, data := range map[string][][]interface{}{
		SheetInputs:   inputs,
		SheetKPIs:     kpis,
		SheetSegments: segments,
		SheetZones:    zones,
	} {
		if err := writeRows(f, sheet, data); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("sheet %s header style: %w", sheet, err)
		}
	}

	for _, c := range colWidths {
		if err := f.SetColWidth(c.sheet, c.from, c.to, c.width); err != nil {
			return fmt.Errorf("sheet %s columns %s:%s: %w", c.sheet, c.from, c.to, err)
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, data [][]interface{}) error {
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
