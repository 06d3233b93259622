package reference

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"mainport/internal/model"
	"mainport/internal/service/excel"
)

var (
	// ErrMissingCategory a required row label is absent from a reference table
	ErrMissingCategory = errors.New("missing category")
	// ErrMissingColumn a required column is absent from a reference table
	ErrMissingColumn = errors.New("missing column")
)

// Files locations of the reference data set
type Files struct {
	Scenarios  string
	Haul       string
	Economics  string
	Governance string
	Zones      string
}

// Key columns and numeric columns of the workbooks
const (
	colScenario = "scenario"
	colType     = "type"

	colBaseSlotFrac  = "base_slot_frac"
	colNumPassengers = "num_passengers"
	colCargoVolume   = "cargo_volume"
	colFracTourist   = "frac_tourist"
	colFracBusiness  = "frac_business"

	colAddedValueBase     = "added_value_schiphol"
	colAddedValueTourist  = "added_value_tourist"
	colAddedValueBusiness = "added_value_business"
	colEmploymentBase     = "employment_schiphol"
	colEmploymentTourist  = "employment_tourist"
	colEmploymentBusiness = "employment_business"

	colCountry = "country"
	colISO3    = "iso3"
	colScore   = "governance_score"
)

// Load reads every reference table. Any missing label, column or runway level is an error.
func Load(files Files, runways []string) (*model.ReferenceTables, error) {
	tables := &model.ReferenceTables{}

	err := withFile(files.Scenarios, func(r io.Reader) (err error) {
		tables.Archetypes, err = ParseScenarios(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Haul, func(r io.Reader) (err error) {
		tables.HaulRows, err = ParseHaulDistributions(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Economics, func(r io.Reader) (err error) {
		tables.EconomicFactors, err = ParseEconomicFactors(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = withFile(files.Governance, func(r io.Reader) (err error) {
		tables.Governance, err = ParseGovernance(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(files.Zones)
	if err != nil {
		return nil, fmt.Errorf("noise zones: %w", err)
	}
	tables.Zones, err = ParseZones(data, runways)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files.Zones, err)
	}

	log.Info().
		Int("scenarios", len(tables.Archetypes)).
		Int("haulRows", len(tables.HaulRows)).
		Int("economicFactors", len(tables.EconomicFactors)).
		Int("governance", len(tables.Governance)).
		Int("zones", len(tables.Zones)).
		Msg("reference data loaded")

	return tables, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readTable loads the first sheet and checks the required columns.
func readTable(r io.Reader, required ...string) (*excel.Table, error) {
	p := excel.NewParser()
	if err := p.LoadFile(r); err != nil {
		return nil, err
	}
	defer p.Close()

	table, err := p.ReadTable("")
	if err != nil {
		return nil, err
	}
	if missing := table.MissingColumns(required...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return table, nil
}

// floatReader collects the first parse error so a row can be read field by field.
type floatReader struct {
	rec excel.Record
	err error
}

func (f *floatReader) get(col string) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.rec.Float(col)
	if err != nil {
		f.err = err
	}
	return v
}

// ParseScenarios reads the archetype table keyed by "scenario".
// Hub optimized and OD optimized are required; Custom has no row.
func ParseScenarios(r io.Reader) (map[model.Archetype]model.ScenarioArchetype, error) {
	required := []string{colScenario}
	for _, h := range model.HaulLengths {
		required = append(required, model.ArchetypeColumn(h, true), model.ArchetypeColumn(h, false))
	}
	table, err := readTable(r, required...)
	if err != nil {
		return nil, err
	}
	rows, err := table.Index(colScenario)
	if err != nil {
		return nil, err
	}

	out := make(map[model.Archetype]model.ScenarioArchetype, 2)
	for _, name := range []model.Archetype{model.ArchetypeHubOptimized, model.ArchetypeODOptimized} {
		rec, ok := rows[string(name)]
		if !ok {
			return nil, fmt.Errorf("%w: scenario %q", ErrMissingCategory, name)
		}
		fr := floatReader{rec: rec}
		arch := model.ScenarioArchetype{
			Name:     name,
			Increase: make(map[model.HaulLength]float64, len(model.HaulLengths)),
			Decrease: make(map[model.HaulLength]float64, len(model.HaulLengths)),
		}
		for _, h := range model.HaulLengths {
			arch.Increase[h] = fr.get(model.ArchetypeColumn(h, true))
			arch.Decrease[h] = fr.get(model.ArchetypeColumn(h, false))
		}
		if fr.err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, fr.err)
		}
		out[name] = arch
	}
	return out, nil
}

// ParseHaulDistributions reads the haul table keyed by "type".
func ParseHaulDistributions(r io.Reader) (map[string]model.HaulDistributionRow, error) {
	table, err := readTable(r, colType, colBaseSlotFrac, colNumPassengers, colCargoVolume, colFracTourist, colFracBusiness)
	if err != nil {
		return nil, err
	}
	rows, err := table.Index(colType)
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.HaulDistributionRow, 6)
	for _, label := range model.RequiredHaulLabels() {
		rec, ok := rows[label]
		if !ok {
			return nil, fmt.Errorf("%w: haul distribution %q", ErrMissingCategory, label)
		}
		fr := floatReader{rec: rec}
		row := model.HaulDistributionRow{
			Label:         label,
			BaseSlotFrac:  fr.get(colBaseSlotFrac),
			NumPassengers: fr.get(colNumPassengers),
			CargoVolume:   fr.get(colCargoVolume),
			FracTourist:   fr.get(colFracTourist),
			FracBusiness:  fr.get(colFracBusiness),
		}
		if fr.err != nil {
			return nil, fmt.Errorf("haul distribution %q: %w", label, fr.err)
		}
		out[label] = row
	}
	return out, nil
}

// ParseEconomicFactors reads the economic factor table keyed by "type".
func ParseEconomicFactors(r io.Reader) (map[string]model.EconomicFactorRow, error) {
	table, err := readTable(r, colType,
		colAddedValueBase, colAddedValueTourist, colAddedValueBusiness,
		colEmploymentBase, colEmploymentTourist, colEmploymentBusiness)
	if err != nil {
		return nil, err
	}
	rows, err := table.Index(colType)
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.EconomicFactorRow, 2)
	for _, label := range []string{model.EconPax, model.EconCargo} {
		rec, ok := rows[label]
		if !ok {
			return nil, fmt.Errorf("%w: economic factors %q", ErrMissingCategory, label)
		}
		fr := floatReader{rec: rec}
		row := model.EconomicFactorRow{
			Label:              label,
			AddedValueBase:     fr.get(colAddedValueBase),
			AddedValueTourist:  fr.get(colAddedValueTourist),
			AddedValueBusiness: fr.get(colAddedValueBusiness),
			EmploymentBase:     fr.get(colEmploymentBase),
			EmploymentTourist:  fr.get(colEmploymentTourist),
			EmploymentBusiness: fr.get(colEmploymentBusiness),
		}
		if fr.err != nil {
			return nil, fmt.Errorf("economic factors %q: %w", label, fr.err)
		}
		out[label] = row
	}
	return out, nil
}

// ParseGovernance reads the governance score table. Rows without an ISO3 code are skipped.
func ParseGovernance(r io.Reader) ([]model.GovernanceScore, error) {
	table, err := readTable(r, colCountry, colISO3, colScore)
	if err != nil {
		return nil, err
	}

	out := make([]model.GovernanceScore, 0, len(table.Records))
	for _, rec := range table.Records {
		iso3 := strings.ToUpper(rec.Value(colISO3))
		if iso3 == "" {
			continue
		}
		score, err := rec.Float(colScore)
		if err != nil {
			return nil, err
		}
		out = append(out, model.GovernanceScore{
			Country: rec.Value(colCountry),
			ISO3:    iso3,
			Score:   score,
		})
	}
	return out, nil
}
