package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mainport/internal/model"
)

// HistogramBins bin count of the noise distribution chart
const HistogramBins = 40

// Chart names served per session
const (
	ChartPax        = "pax"
	ChartCargo      = "cargo"
	ChartValue      = "value"
	ChartEmployment = "employment"
	ChartNoise      = "noise"
)

// Names session charts in dashboard order
var Names = []string{ChartPax, ChartCargo, ChartNoise, ChartValue, ChartEmployment}

// ErrUnknownChart no chart with that name
var ErrUnknownChart = errors.New("unknown chart")

var (
	governanceColors = []string{"#d62728", "#ffbf00", "#2ca02c"}
	barColor         = "#1f77b4"
)

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "100%",
		Height:    "320px",
	})
}

// Render writes the named session chart as a standalone HTML page.
func Render(w io.Writer, name string, res *model.DerivedResult) error {
	if res == nil {
		return errors.New("no result to chart")
	}

	var r interface{ Render(io.Writer) error }
	switch name {
	case ChartPax:
		r = SegmentBar("Number of passengers by segment (million)", res.Segments, func(s model.SegmentRow) float64 { return s.Pax })
	case ChartCargo:
		r = SegmentBar("Cargo volume by segment (million tons)", res.Segments, func(s model.SegmentRow) float64 { return s.Cargo })
	case ChartValue:
		r = SegmentBar("Added value by segment (€m/yr)", res.Segments, func(s model.SegmentRow) float64 { return s.AddedValue / 1e6 })
	case ChartEmployment:
		r = SegmentBar("Employment by segment (direct jobs)", res.Segments, func(s model.SegmentRow) float64 { return s.Jobs })
	case ChartNoise:
		r = NoiseHistogram(res.Zones)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	return r.Render(w)
}

// SegmentBar bar chart of one metric per segment, in segment order.
func SegmentBar(title string, segments []model.SegmentRow, metric func(model.SegmentRow) float64) *charts.Bar {
	x := make([]string, 0, len(segments))
	y := make([]opts.BarData, 0, len(segments))
	for _, s := range segments {
		x = append(x, s.Segment)
		y = append(y, opts.BarData{Value: round(metric(s), 4)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30}}),
	)
	bar.SetXAxis(x).
		AddSeries("segments", y, charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}))
	return bar
}

// Bin one histogram bucket [Lo, Hi)
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count float64 `json:"count"`
}

// Histogram splits values into n equal-width bins spanning their range.
// NaN and infinite values are ignored; a constant series gets a unit-wide range.
func Histogram(values []float64, n int) []Bin {
	if n <= 0 {
		return nil
	}
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return nil
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := make([]float64, n+1)
	floats.Span(dividers, lo, hi)
	// the last bin is closed on the right
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: counts[i]}
	}
	return bins
}

// NoiseHistogram distribution of per-zone level changes.
func NoiseHistogram(zones []model.NoiseZoneResult) *charts.Bar {
	diffs := make([]float64, len(zones))
	for i, z := range zones {
		diffs[i] = z.Diff
	}

	bins := Histogram(diffs, HistogramBins)
	x := make([]string, len(bins))
	y := make([]opts.BarData, len(bins))
	for i, b := range bins {
		x[i] = fmt.Sprintf("%.2f", (b.Lo+b.Hi)/2)
		y[i] = opts.BarData{Value: b.Count}
	}

	const title = "Distribution of Lden"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "diff (dB)", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "zones"}),
	)
	bar.SetXAxis(x).
		AddSeries("zones", y,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}),
			charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "0%"}),
		)
	return bar
}

// GovernanceMap world map of governance scores on a red-yellow-green 0-1 scale.
// Countries are placed by ISO3 code.
func GovernanceMap(scores []model.GovernanceScore) *charts.Map {
	data := make([]opts.MapData, 0, len(scores))
	for _, s := range scores {
		data = append(data, opts.MapData{Name: RegionName(s.ISO3, s.Country), Value: round(s.Score, 2)})
	}

	const title = "Governance stability (WGI 2023)"
	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Text:       []string{"Stabiliteit", ""},
			InRange:    &opts.VisualMapInRange{Color: governanceColors},
		}),
	)
	m.AddSeries("governance", data)
	return m
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
