package analytics

import (
	"strings"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// RiskSummary is the executive-summary payload: category counts,
// population exposure, and climate concern across a county set.
type RiskSummary struct {
	TotalCounties    int     `json:"total_counties"`
	CriticalCounties int     `json:"critical_counties"`
	HighCounties     int     `json:"high_counties"`
	ModerateCounties int     `json:"moderate_counties"`
	LowCounties      int     `json:"low_counties"`
	AvgRiskScore     float64 `json:"avg_risk_score"`
	HighCriticalAvg  float64 `json:"high_critical_avg"`
	TotalPopulation  int64   `json:"total_population"`
	PopulationAtRisk float64 `json:"population_at_risk"`
	WarmingCounties  int     `json:"warming_counties"`
}

// Summarize computes the executive summary over the given counties.
// Warming counties are those whose trend contains "Warming", covering
// both the Warming and Warming & Drying patterns.
func Summarize(counties []models.County) RiskSummary {
	s := RiskSummary{TotalCounties: len(counties)}

	var scores, elevated []float64
	for _, c := range counties {
		scores = append(scores, c.Assessment.Score)
		switch c.Assessment.Category {
		case models.RiskCategoryCritical:
			s.CriticalCounties++
			elevated = append(elevated, c.Assessment.Score)
		case models.RiskCategoryHigh:
			s.HighCounties++
			elevated = append(elevated, c.Assessment.Score)
		case models.RiskCategoryModerate:
			s.ModerateCounties++
		default:
			s.LowCounties++
		}

		s.TotalPopulation += c.Population
		s.PopulationAtRisk += c.PopulationAtRisk
		if strings.Contains(c.ClimateTrend, "Warming") {
			s.WarmingCounties++
		}
	}

	s.AvgRiskScore = Mean(scores)
	s.HighCriticalAvg = Mean(elevated)
	return s
}

// ComponentProfile is one county's four component scores, for the
// comparison view.
type ComponentProfile struct {
	County        string              `json:"county"`
	HeatStress    float64             `json:"heat_stress"`
	DroughtStress float64             `json:"drought_stress"`
	FireHistory   float64             `json:"fire_history_score"`
	WUIExposure   float64             `json:"wui_exposure_score"`
	RiskScore     float64             `json:"risk_score"`
	Category      models.RiskCategory `json:"risk_category"`
}

// Compare returns side-by-side component profiles in the order given.
func Compare(counties []models.County) []ComponentProfile {
	profiles := make([]ComponentProfile, 0, len(counties))
	for _, c := range counties {
		profiles = append(profiles, ComponentProfile{
			County:        c.Name,
			HeatStress:    c.Metrics.HeatStress,
			DroughtStress: c.Metrics.DroughtStress,
			FireHistory:   c.Metrics.FireHistory,
			WUIExposure:   c.Metrics.WUIExposure,
			RiskScore:     c.Assessment.Score,
			Category:      c.Assessment.Category,
		})
	}
	return profiles
}
