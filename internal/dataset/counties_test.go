package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcurry/wa-firewatch/internal/risk"
)

const countiesHeader = "County,climate_fire_risk_score,risk_category,climate_trend,heat_stress,drought_stress,fire_history_score,wui_exposure_score,population,population_at_risk,Fire_Count,wui_exposure_pct,pct_interface,pct_intermix,mean_pop_density,avg_housing_density,TMAX_Z_mean,PRCP_Z_mean\n"

func TestParseCounties(t *testing.T) {
	csv := countiesHeader +
		"Chelan,68.2,Critical,Warming & Drying,80,60,70,50,79074,31200,42,39.5,0.21,0.18,27.1,12.4,1.8,-0.9\n" +
		"King,31.0,Low,Stable,20,15,25,45,2269675,180000,12,8.1,0.07,0.02,1042.5,410.2,0.4,0.1\n"

	counties, err := parseCounties(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, counties, 2)

	chelan := counties[0]
	assert.Equal(t, "CHELAN", chelan.Name, "county names are upper-cased")
	assert.Equal(t, 80.0, chelan.Metrics.HeatStress)
	assert.Equal(t, 60.0, chelan.Metrics.DroughtStress)
	assert.Equal(t, 70.0, chelan.Metrics.FireHistory)
	assert.Equal(t, 50.0, chelan.Metrics.WUIExposure)
	assert.Equal(t, "Warming & Drying", chelan.ClimateTrend)
	assert.Equal(t, int64(79074), chelan.Population)
	assert.Equal(t, 42, chelan.FireCount)
	assert.Equal(t, 1.8, chelan.TmaxAnomaly)

	// Stored composite score is advisory only; the loader does not copy it
	// into the assessment.
	assert.Zero(t, chelan.Assessment.Score)
}

func TestParseCounties_MissingComponent(t *testing.T) {
	csv := countiesHeader +
		"Ferry,50,Moderate,Warming,62,,48,33,7178,2100,9,22.0,0.1,0.3,3.2,1.5,1.1,-0.4\n"

	_, err := parseCounties(strings.NewReader(csv))
	require.Error(t, err)

	var ime *risk.InvalidMetricError
	require.True(t, errors.As(err, &ime), "expected InvalidMetricError, got %v", err)
	assert.Equal(t, "FERRY", ime.County)
	assert.Equal(t, "drought_stress", ime.Field)
}

func TestParseCounties_NonNumericComponent(t *testing.T) {
	csv := countiesHeader +
		"Ferry,50,Moderate,Warming,62,n/a,48,33,7178,2100,9,22.0,0.1,0.3,3.2,1.5,1.1,-0.4\n"

	_, err := parseCounties(strings.NewReader(csv))

	var ime *risk.InvalidMetricError
	require.True(t, errors.As(err, &ime), "expected InvalidMetricError, got %v", err)
	assert.Equal(t, "n/a", ime.Value)
}

func TestParseCounties_HeaderOnly(t *testing.T) {
	counties, err := parseCounties(strings.NewReader(countiesHeader))
	require.NoError(t, err)
	assert.Empty(t, counties)
}

func TestParseCounties_MissingCountyColumn(t *testing.T) {
	_, err := parseCounties(strings.NewReader("heat_stress,drought_stress\n10,20\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "County column")
}

func TestParseCounties_DescriptiveColumnsTolerateBlanks(t *testing.T) {
	// Blank non-component numerics load as zero; only the four component
	// scores reject empty values.
	csv := countiesHeader +
		"Adams,40,Low,Stable,40,40,40,40,,,,,,,,,,\n"

	counties, err := parseCounties(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, counties, 1)
	assert.Zero(t, counties[0].Population)
	assert.Zero(t, counties[0].WUIExposurePct)
}

func TestParseCounties_MalformedDescriptiveColumn(t *testing.T) {
	// A garbled descriptive value is a corrupt row; it must not load as
	// zero population.
	csv := countiesHeader +
		"Adams,40,Low,Stable,40,40,40,40,not-a-number,2100,9,22.0,0.1,0.3,3.2,1.5,1.1,-0.4\n"

	_, err := parseCounties(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "population")
	assert.Contains(t, err.Error(), "not-a-number")
}
