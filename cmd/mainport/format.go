package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"mainport/internal/model"
	"mainport/internal/service/calculator"
	"mainport/internal/util"
)

func printScenario(w io.Writer, st model.ScenarioState, res *model.DerivedResult) {
	fmt.Fprintf(w, "%s\n", st.Title)
	fmt.Fprintf(w, "  slots %d, freight %.0f%%, %s (short %d / medium %d / long %d)\n\n",
		st.Slots, st.FreightSharePct, st.Archetype,
		res.HaulMix.ShortPct, res.HaulMix.MediumPct, res.HaulMix.LongPct)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, card := range util.Cards(res.KPIs) {
		fmt.Fprintf(tw, "  %s\t%s\n", card.Title, card.Value)
	}
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "segment\tslots\tadded value (€m)\tjobs\tpax (m)\tcargo (Mt)\t")
	for _, s := range res.Segments {
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\t%.0f\t%.3f\t%.4f\t\n",
			s.Segment, s.Slots, s.AddedValue/1e6, s.Jobs, s.Pax, s.Cargo)
	}
	tw.Flush()
}

func printReferenceSummary(w io.Writer, e *calculator.Engine) {
	t := e.Tables()
	params := e.Params()

	fmt.Fprintf(w, "base slots: %d\n", params.BaseSlots)
	fmt.Fprintf(w, "runways: %d\n", len(params.Runways))
	fmt.Fprintf(w, "scenarios: %d\n", len(t.Archetypes))
	fmt.Fprintf(w, "haul distribution rows: %d\n", len(t.HaulRows))
	fmt.Fprintf(w, "economic factor rows: %d\n", len(t.EconomicFactors))
	fmt.Fprintf(w, "governance scores: %d\n", len(t.Governance))
	fmt.Fprintf(w, "noise zones: %d\n", len(t.Zones))

	shares := e.DefaultRunwayShares()
	for _, name := range e.RunwayNames() {
		fmt.Fprintf(w, "  %-18s %5.1f%%\n", name, shares[name]*100)
	}

	mix := e.BaselineHaulMix()
	fmt.Fprintf(w, "baseline haul mix: %d / %d / %d\n", mix.ShortPct, mix.MediumPct, mix.LongPct)
}

func printProblems(w io.Writer, problems []string) {
	fmt.Fprintf(w, "ERRORS (%d):\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
