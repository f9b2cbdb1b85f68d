package models

import "time"

type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "Low"
	RiskCategoryModerate RiskCategory = "Moderate"
	RiskCategoryHigh     RiskCategory = "High"
	RiskCategoryCritical RiskCategory = "Critical"
)

// Rank orders categories for comparisons (Critical > High > Moderate > Low).
func (c RiskCategory) Rank() int {
	switch c {
	case RiskCategoryCritical:
		return 3
	case RiskCategoryHigh:
		return 2
	case RiskCategoryModerate:
		return 1
	default:
		return 0
	}
}

type ClimateTrend = string

const (
	TrendWarmingDrying ClimateTrend = "Warming & Drying"
	TrendWarming       ClimateTrend = "Warming"
	TrendStable        ClimateTrend = "Stable"
	TrendCooling       ClimateTrend = "Cooling"
)

// CountyMetrics holds the four pre-normalized component scores the risk
// engine consumes. Normalization happens upstream in data preparation;
// nothing here rescales them.
type CountyMetrics struct {
	County        string
	HeatStress    float64
	DroughtStress float64
	FireHistory   float64
	WUIExposure   float64
}

// RiskAssessment is derived from CountyMetrics on demand. It is never
// mutated; recomputation produces a fresh value.
type RiskAssessment struct {
	Score    float64      `json:"risk_score"`
	Category RiskCategory `json:"risk_category"`
}

// County is one row of the dashboard dataset, joined with the centroid
// from the county GeoJSON.
type County struct {
	Name             string // upper-case county name, unique key
	FIPS             string // optional, carried from GeoJSON properties
	Metrics          CountyMetrics
	ClimateTrend     ClimateTrend
	Population       int64
	PopulationAtRisk float64
	FireCount        int
	WUIExposurePct   float64
	PctInterface     float64
	PctIntermix      float64
	MeanPopDensity   float64
	HousingDensity   float64
	TmaxAnomaly      float64 // TMAX z-score mean
	PrcpAnomaly      float64 // PRCP z-score mean
	Latitude         float64
	Longitude        float64
	Assessment       RiskAssessment
	LoadedAt         time.Time
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c *County) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}
