package analytics

import (
	"sort"

	"github.com/jcurry/wa-firewatch/internal/models"
	"github.com/jcurry/wa-firewatch/internal/risk"
)

// Scenario sensitivity factors: each degree of warming scales heat stress
// by 15%, and 10% of any precipitation change flows into drought stress.
const (
	heatPerDegree     = 0.15
	precipSensitivity = 0.1
)

// ScenarioInput describes a climate-change scenario over the planning
// horizon.
type ScenarioInput struct {
	TempIncreaseC   float64 `json:"temp_increase_c"`
	PrecipChangePct float64 `json:"precip_change_pct"`
}

// CountyProjection is one county's risk under the scenario.
type CountyProjection struct {
	County            string              `json:"county"`
	CurrentScore      float64             `json:"current_score"`
	CurrentCategory   models.RiskCategory `json:"current_category"`
	ProjectedScore    float64             `json:"projected_score"`
	ProjectedCategory models.RiskCategory `json:"projected_category"`
	Change            float64             `json:"change"`
}

// ScenarioResult is the full scenario outcome, counties ordered by
// largest risk increase.
type ScenarioResult struct {
	Input            ScenarioInput      `json:"input"`
	Counties         []CountyProjection `json:"counties"`
	MeanChange       float64            `json:"mean_change"`
	MaxChange        float64            `json:"max_change"`
	MostAffected     string             `json:"most_affected"`
	MajorIncreases   int                `json:"major_increases"`   // counties with change > 5
	CategoryUpgrades int                `json:"category_upgrades"` // counties whose category worsened
}

// RunScenario projects each county's risk under the scenario: heat and
// drought components scale by the climate factors, fire history and WUI
// exposure hold constant, and the composite recombines through the
// standard weights. Projected components are not clamped, matching the
// engine's unclamped input policy.
func RunScenario(counties []models.County, in ScenarioInput) ScenarioResult {
	tempFactor := 1 + in.TempIncreaseC*heatPerDegree
	precipFactor := 1 - in.PrecipChangePct/100*precipSensitivity

	result := ScenarioResult{Input: in}
	var changes []float64
	for _, c := range counties {
		projected := c.Metrics
		projected.HeatStress *= tempFactor
		projected.DroughtStress *= precipFactor

		current := risk.Assess(c.Metrics)
		future := risk.Assess(projected)

		p := CountyProjection{
			County:            c.Name,
			CurrentScore:      current.Score,
			CurrentCategory:   current.Category,
			ProjectedScore:    future.Score,
			ProjectedCategory: future.Category,
			Change:            future.Score - current.Score,
		}
		result.Counties = append(result.Counties, p)
		changes = append(changes, p.Change)

		if p.Change > 5 {
			result.MajorIncreases++
		}
		if future.Category.Rank() > current.Category.Rank() {
			result.CategoryUpgrades++
		}
	}

	sort.Slice(result.Counties, func(a, b int) bool {
		return result.Counties[a].Change > result.Counties[b].Change
	})

	result.MeanChange = Mean(changes)
	if len(result.Counties) > 0 {
		result.MaxChange = result.Counties[0].Change
		result.MostAffected = result.Counties[0].County
	}
	return result
}
