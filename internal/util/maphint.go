package util

import (
	"github.com/paulmach/orb"
)

// MapView initial center and zoom for the noise map
type MapView struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// DefaultMapView Schiphol, used when there is nothing to frame
var DefaultMapView = MapView{Lat: 52.308, Lon: 4.764, Zoom: 9}

// FitBound centers on b and picks a zoom level from its area in square degrees.
func FitBound(b orb.Bound) MapView {
	c := b.Center()
	v := MapView{Lat: c.Lat(), Lon: c.Lon()}

	area := (b.Max.Lon() - b.Min.Lon()) * (b.Max.Lat() - b.Min.Lat())
	switch {
	case area <= 0:
		v.Zoom = 10
	case area < 0.01:
		v.Zoom = 11
	case area < 0.1:
		v.Zoom = 10
	case area < 1:
		v.Zoom = 9
	default:
		v.Zoom = 8
	}
	return v
}

// FitGeometries FitBound over the union of all non-nil geometries.
func FitGeometries(geoms []orb.Geometry) MapView {
	var (
		bound orb.Bound
		found bool
	)
	for _, g := range geoms {
		if g == nil {
			continue
		}
		if !found {
			bound = g.Bound()
			found = true
			continue
		}
		bound = bound.Union(g.Bound())
	}
	if !found {
		return DefaultMapView
	}
	return FitBound(bound)
}
