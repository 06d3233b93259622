package charts

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mainport/internal/model"
	"mainport/internal/util"
)

// NoiseMap choropleth payload: zone features plus the initial view
type NoiseMap struct {
	Features *geojson.FeatureCollection `json:"geojson"`
	View     util.MapView               `json:"view"`
}

// NoiseFeatures joins zone geometry with the scenario result of each zone and its
// baseline level (normal, indexed like zones). Zones without geometry are left out
// of the collection but still count in the KPIs.
func NoiseFeatures(zones []model.NoiseZone, results []model.NoiseZoneResult, normal []float64) NoiseMap {
	byID := make(map[int]model.NoiseZoneResult, len(results))
	for _, r := range results {
		byID[r.ZoneID] = r
	}

	fc := geojson.NewFeatureCollection()
	geoms := make([]orb.Geometry, 0, len(zones))
	for i, z := range zones {
		if z.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(z.Geometry)
		f.ID = z.ID
		f.Properties["fid"] = z.ID
		f.Properties["population"] = z.Population
		f.Properties["baseline_diff"] = z.BaselineDiff
		if i < len(normal) {
			f.Properties["normal"] = normal[i]
		}
		if r, ok := byID[z.ID]; ok {
			f.Properties["level"] = r.Level
			f.Properties["diff"] = r.Diff
		}
		fc.Append(f)
		geoms = append(geoms, z.Geometry)
	}

	return NoiseMap{Features: fc, View: util.FitGeometries(geoms)}
}
