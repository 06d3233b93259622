package util

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"mainport/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Airport Scenario", "my-airport-scenario"},
		{"  Hub 2030: growth!  ", "hub-2030-growth"},
		{"Night -- curfew", "night-curfew"},
		{"---", DefaultSlug},
		{"", DefaultSlug},
		{"Überflug", "berflug"},
		{"a\tb\nc", "a-b-c"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSharePath(t *testing.T) {
	assert.Equal(t, "/share/od-focus", SharePath("OD focus"))
}

func TestCards(t *testing.T) {
	cards := Cards(model.HeadlineKPIs{
		HomesAffected:     12345,
		ValueDirect:       7625.1277,
		ValueIndirect:     6862.61493,
		JobsDirect:        67123.867,
		JobsIndirect:      60411.4803,
		TotalPax:          89.9118,
		TotalCargoFreight: 1.1233,
		TotalCargoBelly:   1.385005,
	})

	want := map[string]string{
		"homes":               "12,345",
		"va_direct":           "7,625.1",
		"va_indirect":         "6,862.6",
		"total_pax":           "89.912",
		"jobs_direct":         "67,123",
		"jobs_indirect":       "60,411",
		"total_cargo_freight": "1.1233",
		"total_cargo_belly":   "1.385",
	}

	assert.Len(t, cards, 8)
	for _, c := range cards {
		assert.Equal(t, want[c.Key], c.Value, c.Key)
	}
	assert.Equal(t, "homes", cards[0].Key)
	assert.Equal(t, "total_cargo_belly", cards[7].Key)
}

func TestCardsTruncateJobs(t *testing.T) {
	cards := Cards(model.HeadlineKPIs{JobsDirect: 1999.99, JobsIndirect: 0.9})
	got := map[string]string{}
	for _, c := range cards {
		got[c.Key] = c.Value
	}
	assert.Equal(t, "1,999", got["jobs_direct"])
	assert.Equal(t, "0", got["jobs_indirect"])
}

func TestFitBoundZoom(t *testing.T) {
	tests := []struct {
		name string
		b    orb.Bound
		zoom int
	}{
		{"point", orb.Bound{Min: orb.Point{4.7, 52.3}, Max: orb.Point{4.7, 52.3}}, 10},
		{"small", orb.Bound{Min: orb.Point{4.7, 52.3}, Max: orb.Point{4.75, 52.35}}, 11},
		{"medium", orb.Bound{Min: orb.Point{4.6, 52.2}, Max: orb.Point{4.8, 52.4}}, 10},
		{"large", orb.Bound{Min: orb.Point{4.0, 52.0}, Max: orb.Point{4.5, 52.5}}, 9},
		{"country", orb.Bound{Min: orb.Point{3.0, 50.0}, Max: orb.Point{7.0, 54.0}}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zoom, FitBound(tt.b).Zoom)
		})
	}

	v := FitBound(orb.Bound{Min: orb.Point{4.0, 52.0}, Max: orb.Point{5.0, 53.0}})
	assert.InDelta(t, 52.5, v.Lat, 1e-12)
	assert.InDelta(t, 4.5, v.Lon, 1e-12)
}

func TestFitGeometries(t *testing.T) {
	assert.Equal(t, DefaultMapView, FitGeometries(nil))

	v := FitGeometries([]orb.Geometry{
		orb.Point{4.0, 52.0},
		nil,
		orb.Point{4.2, 52.2},
	})
	assert.InDelta(t, 52.1, v.Lat, 1e-12)
	assert.InDelta(t, 4.1, v.Lon, 1e-12)
	assert.Equal(t, 10, v.Zoom)
}

func TestDashboardURL(t *testing.T) {
	if got := DashboardURL(8501); got != "http://localhost:8501/" {
		t.Errorf("DashboardURL(8501) = %q", got)
	}
}
