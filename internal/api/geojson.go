package api

import (
	"github.com/jcurry/wa-firewatch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(counties []models.County) FeatureCollection {
	features := make([]Feature, 0, len(counties))

	for _, c := range counties {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{c.Longitude, c.Latitude},
			},
			Properties: map[string]any{
				"county":             c.Name,
				"risk_score":         c.Assessment.Score,
				"risk_category":      c.Assessment.Category,
				"climate_trend":      c.ClimateTrend,
				"heat_stress":        c.Metrics.HeatStress,
				"drought_stress":     c.Metrics.DroughtStress,
				"fire_history_score": c.Metrics.FireHistory,
				"wui_exposure_score": c.Metrics.WUIExposure,
				"population":         c.Population,
				"population_at_risk": c.PopulationAtRisk,
				"fire_count":         c.FireCount,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
