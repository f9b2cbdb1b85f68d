// Package report renders stakeholder reports from assessed county data:
// an executive summary for leadership and per-county risk assessments.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jcurry/wa-firewatch/internal/analytics"
	"github.com/jcurry/wa-firewatch/internal/models"
)

// Climate impact thresholds for the executive summary trend section.
const (
	heatImpactThreshold    = 20.0
	droughtImpactThreshold = 10.0
)

// ExecutiveSummaryData feeds the executive summary templates.
type ExecutiveSummaryData struct {
	GeneratedAt time.Time
	Summary     analytics.RiskSummary
	TopCounties []models.County

	// Climate impact buckets.
	HeatImpacted    int // counties with heat stress above the threshold
	DroughtImpacted int // counties with drought stress above the threshold
	WarmingDrying   int

	// Historical declaration context.
	TotalDeclarations  int
	RecentDeclarations int // last five years
	PerYear            float64
}

// BuildExecutiveSummary assembles the summary over all counties and
// declarations. Recency is measured against the injected clock.
func BuildExecutiveSummary(counties []models.County, decls []models.Declaration) ExecutiveSummaryData {
	now := clock.Now()
	data := ExecutiveSummaryData{
		GeneratedAt:       now,
		Summary:           analytics.Summarize(counties),
		TotalDeclarations: len(decls),
	}

	for _, c := range counties {
		if c.Metrics.HeatStress > heatImpactThreshold {
			data.HeatImpacted++
		}
		if c.Metrics.DroughtStress > droughtImpactThreshold {
			data.DroughtImpacted++
		}
		if c.ClimateTrend == models.TrendWarmingDrying {
			data.WarmingDrying++
		}
	}

	sorted := make([]models.County, len(counties))
	copy(sorted, counties)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Assessment.Score > sorted[j].Assessment.Score
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	data.TopCounties = sorted

	cutoff := now.AddDate(-5, 0, 0)
	minYear, maxYear := 0, 0
	for _, d := range decls {
		if d.Date.After(cutoff) {
			data.RecentDeclarations++
		}
		y := d.Date.Year()
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if span := maxYear - minYear; span > 0 {
		data.PerYear = float64(len(decls)) / float64(span)
	} else {
		data.PerYear = float64(len(decls))
	}

	return data
}

// CountyReportData feeds the per-county assessment templates.
type CountyReportData struct {
	GeneratedAt  time.Time
	County       models.County
	Percentile   float64 // score percentile across the county set
	Declarations []models.Declaration
	Elevated     bool // High or Critical drives the immediate-action section
}

// BuildCountyReport assembles the assessment for one county. The full
// county set provides the percentile context; declarations should already
// be filtered to the county.
func BuildCountyReport(county models.County, all []models.County, decls []models.Declaration) CountyReportData {
	scores := make([]float64, len(all))
	for i, c := range all {
		scores[i] = c.Assessment.Score
	}

	// Newest declarations first, capped for the report body.
	sorted := make([]models.Declaration, len(decls))
	copy(sorted, decls)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	cat := county.Assessment.Category
	return CountyReportData{
		GeneratedAt:  clock.Now(),
		County:       county,
		Percentile:   analytics.PercentileRank(county.Assessment.Score, scores),
		Declarations: sorted,
		Elevated:     cat == models.RiskCategoryHigh || cat == models.RiskCategoryCritical,
	}
}

// Format selects the rendering target.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// RenderExecutiveSummary renders the executive summary in the given
// format.
func RenderExecutiveSummary(data ExecutiveSummaryData, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return render(executiveSummaryMarkdown, data)
	case FormatHTML:
		return renderHTML(executiveSummaryHTML, data)
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

// RenderCountyReport renders a county assessment in the given format.
func RenderCountyReport(data CountyReportData, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return render(countyReportMarkdown, data)
	case FormatHTML:
		return renderHTML(countyReportHTML, data)
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
