// Package geo provides the spatial helpers behind the map endpoints.
package geo

import (
	"sort"

	"github.com/golang/geo/s2"

	"github.com/jcurry/wa-firewatch/internal/models"
)

const earthRadiusMeters = 6371000.0

// Washington state map center served to map consumers.
var StateCenter = models.Coordinates{Latitude: 47.5, Longitude: -120.5}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// Neighbor pairs a county with its distance from a query point.
type Neighbor struct {
	County     models.County `json:"county"`
	DistanceKm float64       `json:"distance_km"`
}

// WithinRadius returns the counties whose centroid lies within radiusKm of
// the query point, nearest first. Counties without coordinates (zero
// centroid from a missing GeoJSON join) are skipped.
func WithinRadius(counties []models.County, lat, lon, radiusKm float64) []Neighbor {
	var out []Neighbor
	for _, c := range counties {
		if c.Latitude == 0 && c.Longitude == 0 {
			continue
		}
		km := DistanceMeters(lat, lon, c.Latitude, c.Longitude) / 1000
		if km <= radiusKm {
			out = append(out, Neighbor{County: c, DistanceKm: km})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].DistanceKm < out[b].DistanceKm })
	return out
}
