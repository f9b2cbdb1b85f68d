// Package risk computes composite wildfire risk scores and categories for
// counties. Everything here is a pure function of CountyMetrics so the
// engine can be tested in isolation from storage and presentation.
package risk

import (
	"fmt"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// Component weights for the composite score. The four inputs contribute
// equally.
const (
	WeightHeatStress    = 0.25
	WeightDroughtStress = 0.25
	WeightFireHistory   = 0.25
	WeightWUIExposure   = 0.25
)

// Category thresholds, inclusive lower bounds.
const (
	ThresholdCritical = 65.0
	ThresholdHigh     = 55.0
	ThresholdModerate = 45.0
)

// InvalidMetricError reports a component score that is missing or failed
// numeric parsing. Callers surface it rather than defaulting the value,
// since a silent substitute would corrupt downstream risk comparisons.
type InvalidMetricError struct {
	County string
	Field  string
	Value  string // raw input, empty when the field is absent
}

func (e *InvalidMetricError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("county %s: missing component score %s", e.County, e.Field)
	}
	return fmt.Sprintf("county %s: non-numeric component score %s=%q", e.County, e.Field, e.Value)
}

// ComputeScore returns the weighted composite of the four component
// scores. Inputs are expected in [0,100] but out-of-range values are not
// clamped or rejected; they propagate arithmetically, so a component of
// 120 yields a score above 100.
func ComputeScore(m models.CountyMetrics) float64 {
	return WeightHeatStress*m.HeatStress +
		WeightDroughtStress*m.DroughtStress +
		WeightFireHistory*m.FireHistory +
		WeightWUIExposure*m.WUIExposure
}

// Categorize maps a score to its risk category. Total over all reals:
// scores above 100 are still Critical, negative scores are Low. Boundary
// values belong to the higher category.
func Categorize(score float64) models.RiskCategory {
	switch {
	case score >= ThresholdCritical:
		return models.RiskCategoryCritical
	case score >= ThresholdHigh:
		return models.RiskCategoryHigh
	case score >= ThresholdModerate:
		return models.RiskCategoryModerate
	default:
		return models.RiskCategoryLow
	}
}

// Assess computes the full assessment for one county.
func Assess(m models.CountyMetrics) models.RiskAssessment {
	score := ComputeScore(m)
	return models.RiskAssessment{
		Score:    score,
		Category: Categorize(score),
	}
}

// AssessAll assesses a batch of metrics keyed by county identifier. The
// output carries the same key set as the input; each entry is independent
// of the others.
func AssessAll(metrics map[string]models.CountyMetrics) map[string]models.RiskAssessment {
	out := make(map[string]models.RiskAssessment, len(metrics))
	for county, m := range metrics {
		out[county] = Assess(m)
	}
	return out
}
