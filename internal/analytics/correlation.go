package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// PearsonCorrelation returns the Pearson correlation coefficient between
// two equal-length series, in [-1, 1]. Degenerate inputs return 0.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2, sumY2 float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return 0
	}

	return sumXY / math.Sqrt(sumX2*sumY2)
}

// SpearmanCorrelation is Pearson over the rank transforms, with average
// ranks for ties.
func SpearmanCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	return PearsonCorrelation(rank(x), rank(y))
}

func rank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// average rank across the tie run, 1-based
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// Regression is a least-squares line fit with its goodness measure.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
func LinearRegression(x, y []float64) Regression {
	if len(x) != len(y) || len(x) < 2 {
		return Regression{}
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2 float64
	for i := range x {
		sumXY += (x[i] - meanX) * (y[i] - meanY)
		sumX2 += (x[i] - meanX) * (x[i] - meanX)
	}
	if sumX2 == 0 {
		return Regression{Intercept: meanY}
	}

	slope := sumXY / sumX2
	r := PearsonCorrelation(x, y)
	return Regression{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
		R2:        r * r,
	}
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// County variables exposed to the correlation endpoints, by the column
// names the dashboard dataset uses.
var countyVars = map[string]func(models.County) float64{
	"risk_score":          func(c models.County) float64 { return c.Assessment.Score },
	"heat_stress":         func(c models.County) float64 { return c.Metrics.HeatStress },
	"drought_stress":      func(c models.County) float64 { return c.Metrics.DroughtStress },
	"fire_history_score":  func(c models.County) float64 { return c.Metrics.FireHistory },
	"wui_exposure_score":  func(c models.County) float64 { return c.Metrics.WUIExposure },
	"population":          func(c models.County) float64 { return float64(c.Population) },
	"population_at_risk":  func(c models.County) float64 { return c.PopulationAtRisk },
	"fire_count":          func(c models.County) float64 { return float64(c.FireCount) },
	"wui_exposure_pct":    func(c models.County) float64 { return c.WUIExposurePct },
	"mean_pop_density":    func(c models.County) float64 { return c.MeanPopDensity },
	"avg_housing_density": func(c models.County) float64 { return c.HousingDensity },
}

// VariableNames returns the supported variable names, sorted.
func VariableNames() []string {
	names := make([]string, 0, len(countyVars))
	for name := range countyVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractVariable pulls the named variable from each county.
func ExtractVariable(counties []models.County, name string) ([]float64, error) {
	f, ok := countyVars[name]
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", name)
	}
	values := make([]float64, len(counties))
	for i, c := range counties {
		values[i] = f(c)
	}
	return values, nil
}

// MatrixVariables are the columns of the dashboard correlation matrix.
var MatrixVariables = []string{
	"risk_score", "heat_stress", "drought_stress", "fire_history_score",
	"wui_exposure_score", "population_at_risk", "fire_count", "wui_exposure_pct",
}

// CorrelationMatrix computes pairwise Pearson correlations over the matrix
// variables. Result[i][j] corresponds to MatrixVariables[i] vs [j].
func CorrelationMatrix(counties []models.County) [][]float64 {
	series := make([][]float64, len(MatrixVariables))
	for i, name := range MatrixVariables {
		series[i], _ = ExtractVariable(counties, name)
	}

	matrix := make([][]float64, len(series))
	for i := range series {
		matrix[i] = make([]float64, len(series))
		for j := range series {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			matrix[i][j] = PearsonCorrelation(series[i], series[j])
		}
	}
	return matrix
}
