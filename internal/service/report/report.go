package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"

	"mainport/internal/model"
	"mainport/internal/util"
)

// Input everything printed on a scenario report
type Input struct {
	State     model.ScenarioState
	Result    *model.DerivedResult
	Generated time.Time
}

// Write renders a one-page A4 scenario report: levers, headline KPIs and the segment table.
func Write(w io.Writer, in Input) error {
	if in.Result == nil {
		return errors.New("no result to report")
	}
	if in.Generated.IsZero() {
		in.Generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(in.State.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(in.State.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", in.Generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	section(pdf, "Inputs")
	mix := in.Result.HaulMix
	rows := [][2]string{
		{"Slots", fmt.Sprintf("%d", in.State.Slots)},
		{"Freight share", fmt.Sprintf("%.0f%%", in.State.FreightSharePct)},
		{"Scenario", string(in.State.Archetype)},
		{"Haul mix (short / medium / long)", fmt.Sprintf("%d%% / %d%% / %d%%", mix.ShortPct, mix.MediumPct, mix.LongPct)},
	}
	names := make([]string, 0, len(in.State.RunwayShares))
	for name := range in.State.RunwayShares {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, [2]string{"Runway " + name, fmt.Sprintf("%.1f%%", in.State.RunwayShares[name]*100)})
	}
	keyValues(pdf, tr, rows)

	section(pdf, "Headline KPIs")
	cards := util.Cards(in.Result.KPIs)
	kpis := make([][2]string, len(cards))
	for i, c := range cards {
		kpis[i] = [2]string{c.Title, c.Value}
	}
	keyValues(pdf, tr, kpis)

	section(pdf, "Segments")
	segmentTable(pdf, in.Result.Segments)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func keyValues(pdf *gofpdf.Fpdf, tr func(string) string, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(80, 6, tr(r[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(r[1]), "", 1, "L", false, 0, "")
	}
}

func segmentTable(pdf *gofpdf.Fpdf, segments []model.SegmentRow) {
	headers := []string{"Segment", "Slots", "Added value (EURm)", "Jobs", "Pax (m)", "Cargo (Mt)"}
	widths := []float64{45, 25, 35, 25, 25, 25}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(226, 232, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range segments {
		cells := []string{
			s.Segment,
			fmt.Sprintf("%.0f", s.Slots),
			fmt.Sprintf("%.1f", s.AddedValue/1e6),
			fmt.Sprintf("%.0f", s.Jobs),
			fmt.Sprintf("%.3f", s.Pax),
			fmt.Sprintf("%.4f", s.Cargo),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
