package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Centroid is one county centroid from the boundaries GeoJSON.
type Centroid struct {
	County    string
	FIPS      string
	Latitude  float64
	Longitude float64
}

type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Type       string         `json:"type"`
	Geometry   geoGeometry    `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat] for Point features
}

// LoadCentroids parses a GeoJSON FeatureCollection of county centroid
// Points keyed by a "name" property, with an optional "fips" property.
// Missing the file is not fatal to the platform; callers decide whether
// to proceed without coordinates.
func LoadCentroids(path string) (map[string]Centroid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening centroids file: %w", err)
	}

	var fc geoFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error decoding centroids geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("centroids file is not a FeatureCollection (got %q)", fc.Type)
	}

	centroids := make(map[string]Centroid, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) < 2 {
			return nil, fmt.Errorf("centroids feature %d: expected Point geometry", i)
		}
		name, _ := f.Properties["name"].(string)
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("centroids feature %d: missing name property", i)
		}
		fips, _ := f.Properties["fips"].(string)

		centroids[name] = Centroid{
			County:    name,
			FIPS:      fips,
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
		}
	}

	return centroids, nil
}
