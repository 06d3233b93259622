package reference

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"mainport/internal/model"
)

// Zone feature properties
const (
	PropPopulation  = "aantalInwoners"
	PropLevelPrefix = "Lden_"
	propBaselineOne = "Lden_one"
	propBaselineTwo = "Lden_two"
)

// ParseZones reads a GeoJSON FeatureCollection of noise zones. Every feature needs
// a population and an Lden_<runway> level for each runway; negative populations
// count as zero. Zone IDs follow feature order.
func ParseZones(data []byte, runways []string) ([]model.NoiseZone, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}

	zones := make([]model.NoiseZone, 0, len(fc.Features))
	for i, f := range fc.Features {
		pop, ok := numberProp(f.Properties, PropPopulation)
		if !ok {
			return nil, fmt.Errorf("%w: zone %d has no %s", ErrMissingColumn, i, PropPopulation)
		}

		levels := make(map[string]float64, len(runways))
		for _, name := range runways {
			l, ok := numberProp(f.Properties, PropLevelPrefix+name)
			if !ok {
				return nil, fmt.Errorf("%w: zone %d has no %s%s", ErrMissingColumn, i, PropLevelPrefix, name)
			}
			levels[name] = l
		}

		z := model.NoiseZone{
			ID:           i,
			Geometry:     f.Geometry,
			Population:   max(pop, 0),
			RunwayLevels: levels,
		}
		one, okOne := numberProp(f.Properties, propBaselineOne)
		two, okTwo := numberProp(f.Properties, propBaselineTwo)
		if okOne && okTwo {
			z.BaselineDiff = one - two
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func numberProp(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
