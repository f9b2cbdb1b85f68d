package risk

import (
	"testing"

	"github.com/jcurry/wa-firewatch/internal/models"
)

func metrics(heat, drought, fire, wui float64) models.CountyMetrics {
	return models.CountyMetrics{
		County:        "TEST",
		HeatStress:    heat,
		DroughtStress: drought,
		FireHistory:   fire,
		WUIExposure:   wui,
	}
}

func TestComputeScore_Extremes(t *testing.T) {
	if got := ComputeScore(metrics(100, 100, 100, 100)); got != 100 {
		t.Errorf("all components 100: expected score 100, got %v", got)
	}
	if got := ComputeScore(metrics(0, 0, 0, 0)); got != 0 {
		t.Errorf("all components 0: expected score 0, got %v", got)
	}
}

func TestComputeScore_WeightedAverage(t *testing.T) {
	got := ComputeScore(metrics(80, 60, 70, 50))
	if got != 65.0 {
		t.Errorf("expected score 65.0, got %v", got)
	}
	if cat := Categorize(got); cat != models.RiskCategoryCritical {
		t.Errorf("expected Critical for score %v, got %s", got, cat)
	}

	got = ComputeScore(metrics(50, 50, 50, 50))
	if got != 50.0 {
		t.Errorf("expected score 50.0, got %v", got)
	}
	if cat := Categorize(got); cat != models.RiskCategoryModerate {
		t.Errorf("expected Moderate for score %v, got %s", got, cat)
	}
}

func TestCategorize_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskCategory
	}{
		{65.0, models.RiskCategoryCritical},
		{64.999, models.RiskCategoryHigh},
		{55.0, models.RiskCategoryHigh},
		{54.999, models.RiskCategoryModerate},
		{45.0, models.RiskCategoryModerate},
		{44.999, models.RiskCategoryLow},
		{0, models.RiskCategoryLow},
	}
	for _, tc := range cases {
		if got := Categorize(tc.score); got != tc.want {
			t.Errorf("Categorize(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestCategorize_TotalOverAllReals(t *testing.T) {
	// Out-of-range scores are not an error: above 100 is still Critical,
	// negative is Low.
	if got := Categorize(130); got != models.RiskCategoryCritical {
		t.Errorf("Categorize(130) = %s, want Critical", got)
	}
	if got := Categorize(-12.5); got != models.RiskCategoryLow {
		t.Errorf("Categorize(-12.5) = %s, want Low", got)
	}
}

func TestComputeScore_UnclampedInputs(t *testing.T) {
	// A 120 component flows through arithmetically; the engine never clamps.
	got := ComputeScore(metrics(120, 120, 120, 120))
	if got != 120 {
		t.Errorf("expected score 120 for unclamped inputs, got %v", got)
	}
	if cat := Categorize(got); cat != models.RiskCategoryCritical {
		t.Errorf("expected Critical above 100, got %s", cat)
	}
}

func TestComputeScore_Idempotent(t *testing.T) {
	m := metrics(33.3, 41.7, 58.2, 12.9)
	first := ComputeScore(m)
	second := ComputeScore(m)
	if first != second {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestComputeScore_Monotonic(t *testing.T) {
	base := metrics(40, 40, 40, 40)
	baseScore := ComputeScore(base)

	bump := []func(m *models.CountyMetrics){
		func(m *models.CountyMetrics) { m.HeatStress += 10 },
		func(m *models.CountyMetrics) { m.DroughtStress += 10 },
		func(m *models.CountyMetrics) { m.FireHistory += 10 },
		func(m *models.CountyMetrics) { m.WUIExposure += 10 },
	}
	for i, f := range bump {
		m := base
		f(&m)
		if got := ComputeScore(m); got < baseScore {
			t.Errorf("bumping component %d decreased score: %v < %v", i, got, baseScore)
		}
	}
}

func TestAssessAll_KeySet(t *testing.T) {
	in := map[string]models.CountyMetrics{
		"CHELAN":   metrics(80, 60, 70, 50),
		"KING":     metrics(20, 20, 20, 20),
		"OKANOGAN": metrics(90, 85, 88, 70),
	}
	out := AssessAll(in)

	if len(out) != len(in) {
		t.Fatalf("expected %d assessments, got %d", len(in), len(out))
	}
	for county := range in {
		if _, ok := out[county]; !ok {
			t.Errorf("missing assessment for %s", county)
		}
	}
	if out["CHELAN"].Category != models.RiskCategoryCritical {
		t.Errorf("CHELAN: expected Critical, got %s", out["CHELAN"].Category)
	}
	if out["KING"].Category != models.RiskCategoryLow {
		t.Errorf("KING: expected Low, got %s", out["KING"].Category)
	}
}

func TestInvalidMetricError_Message(t *testing.T) {
	missing := &InvalidMetricError{County: "FERRY", Field: "heat_stress"}
	if missing.Error() != "county FERRY: missing component score heat_stress" {
		t.Errorf("unexpected message: %s", missing.Error())
	}

	bad := &InvalidMetricError{County: "FERRY", Field: "heat_stress", Value: "n/a"}
	if bad.Error() != `county FERRY: non-numeric component score heat_stress="n/a"` {
		t.Errorf("unexpected message: %s", bad.Error())
	}
}
