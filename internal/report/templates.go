package report

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

var templateFuncs = map[string]any{
	"title": titleCase,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"f1": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"f2": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"millions": func(v float64) string {
		return fmt.Sprintf("%.2f million", v/1e6)
	},
}

func render(text string, data any) (string, error) {
	tmpl, err := texttemplate.New("report").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

func renderHTML(text string, data any) (string, error) {
	tmpl, err := htmltemplate.New("report").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

const executiveSummaryMarkdown = `# Washington State Wildfire Risk Intelligence Report
## Executive Summary

**Date:** {{date .GeneratedAt}}
**Prepared by:** WA FireWatch Platform

---

### Key Findings

- **{{.Summary.CriticalCounties}}** counties classified as Critical Risk
- **{{.Summary.HighCounties}}** counties classified as High Risk
- **{{millions .Summary.PopulationAtRisk}}** residents in high-risk WUI areas
- **{{.Summary.WarmingCounties}}** counties showing concerning climate trends

### Top Risk Counties
{{range .TopCounties}}
**{{title .Name}} County**
- Risk Score: {{f1 .Assessment.Score}} ({{.Assessment.Category}})
- Climate Trend: {{.ClimateTrend}}
- Population at Risk: {{f1 .PopulationAtRisk}}
{{end}}
---

### Critical Trends

- Increasing heat stress in {{.HeatImpacted}} counties
- Drought conditions affecting {{.DroughtImpacted}} counties
- Warming & drying pattern observed in {{.WarmingDrying}} counties

**Historical Context:**

- **{{.TotalDeclarations}}** federal fire disaster declarations on record
- **{{.RecentDeclarations}}** disasters in the last 5 years
- Average of **{{f1 .PerYear}}** disasters per year

---

### Immediate Priorities

1. **Critical Risk Mitigation** - Deploy resources to {{.Summary.CriticalCounties}} critical counties
2. **WUI Defensible Space** - Expand programs in high-exposure areas
3. **Climate Adaptation** - Develop strategies for warming trend counties
4. **Resource Pre-positioning** - Stage equipment in highest-risk areas
5. **Public Education** - Launch awareness campaigns in vulnerable communities
`

const executiveSummaryHTML = `<!DOCTYPE html>
<html>
<head><title>Wildfire Risk Intelligence Report</title></head>
<body>
<h1>Washington State Wildfire Risk Intelligence Report</h1>
<p><strong>Date:</strong> {{date .GeneratedAt}}</p>

<h2>Key Findings</h2>
<ul>
<li><strong>{{.Summary.CriticalCounties}}</strong> counties classified as Critical Risk</li>
<li><strong>{{.Summary.HighCounties}}</strong> counties classified as High Risk</li>
<li><strong>{{millions .Summary.PopulationAtRisk}}</strong> residents in high-risk WUI areas</li>
<li><strong>{{.Summary.WarmingCounties}}</strong> counties showing concerning climate trends</li>
</ul>

<h2>Top Risk Counties</h2>
<table>
<tr><th>County</th><th>Risk Score</th><th>Category</th><th>Climate Trend</th><th>Population at Risk</th></tr>
{{range .TopCounties}}<tr><td>{{title .Name}}</td><td>{{f1 .Assessment.Score}}</td><td>{{.Assessment.Category}}</td><td>{{.ClimateTrend}}</td><td>{{f1 .PopulationAtRisk}}</td></tr>
{{end}}</table>

<h2>Critical Trends</h2>
<ul>
<li>Increasing heat stress in {{.HeatImpacted}} counties</li>
<li>Drought conditions affecting {{.DroughtImpacted}} counties</li>
<li>Warming &amp; drying pattern observed in {{.WarmingDrying}} counties</li>
</ul>

<h2>Historical Context</h2>
<ul>
<li>{{.TotalDeclarations}} federal fire disaster declarations on record</li>
<li>{{.RecentDeclarations}} disasters in the last 5 years</li>
<li>Average of {{f1 .PerYear}} disasters per year</li>
</ul>
</body>
</html>
`

const countyReportMarkdown = `# {{title .County.Name}} County Wildfire Risk Assessment

**Assessment Date:** {{date .GeneratedAt}}

---

## Executive Summary

**Overall Risk Classification:** {{.County.Assessment.Category}}
**Climate-Fire Risk Score:** {{f1 .County.Assessment.Score}} / 100 ({{f1 .Percentile}}th percentile statewide)

{{title .County.Name}} County is classified as **{{.County.Assessment.Category}}** risk with a composite score of {{f1 .County.Assessment.Score}}.
The county shows a **{{.County.ClimateTrend}}** climate pattern and has experienced **{{.County.FireCount}}** recorded fire events.

---

## Risk Factor Analysis

### Climate Factors
- **Heat Stress Index:** {{f2 .County.Metrics.HeatStress}}
- **Drought Stress Index:** {{f2 .County.Metrics.DroughtStress}}
- **Climate Trend:** {{.County.ClimateTrend}}
- **Temperature Anomaly (Mean):** {{f2 .County.TmaxAnomaly}}
- **Precipitation Anomaly (Mean):** {{f2 .County.PrcpAnomaly}}

### Fire History
- **Historical Fire Events:** {{.County.FireCount}}
- **Fire History Score:** {{f2 .County.Metrics.FireHistory}}
{{if .Declarations}}- **Recent FEMA Declarations:**
{{range .Declarations}}  - {{.Title}} ({{.Date.Year}})
{{end}}{{end}}
### Wildland-Urban Interface
- **WUI Exposure Score:** {{f2 .County.Metrics.WUIExposure}}
- **Interface Areas:** {{f1 .County.PctInterface}}%
- **Intermix Areas:** {{f1 .County.PctIntermix}}%
- **Overall WUI Exposure:** {{f1 .County.WUIExposurePct}}%

### Population Impact
- **Total Population:** {{.County.Population}}
- **Population at Risk:** {{f1 .County.PopulationAtRisk}}
- **Mean Population Density:** {{f1 .County.MeanPopDensity}} per sq mi
- **Average Housing Density:** {{f1 .County.HousingDensity}} per sq mi

---

## Recommendations

### Immediate Actions (0-6 months)
{{if .Elevated}}
1. **Emergency Mitigation Planning** - Initiate county-wide risk reduction strategies
2. **Community Outreach** - Launch public education on fire preparedness
3. **Evacuation Planning** - Update and test evacuation routes
4. **Resource Staging** - Pre-position firefighting equipment
5. **Defensible Space** - Enforce regulations in WUI areas
{{else}}
1. **Preventive Planning** - Maintain current mitigation efforts
2. **Community Education** - Continue Firewise programs
3. **Monitoring** - Track climate and fire indicators
{{end}}
### Strategic Planning (6-24 months)

1. **Fuel Management** - Implement prescribed burns and mechanical thinning
2. **Infrastructure Hardening** - Upgrade critical facilities
3. **Zoning Updates** - Revise codes to reduce fire risk
4. **Regional Coordination** - Establish mutual aid partnerships
`

const countyReportHTML = `<!DOCTYPE html>
<html>
<head><title>{{title .County.Name}} County Risk Assessment</title></head>
<body>
<h1>{{title .County.Name}} County Wildfire Risk Assessment</h1>
<p><strong>Assessment Date:</strong> {{date .GeneratedAt}}</p>

<h2>Executive Summary</h2>
<p><strong>Overall Risk Classification:</strong> {{.County.Assessment.Category}}<br>
<strong>Climate-Fire Risk Score:</strong> {{f1 .County.Assessment.Score}} / 100 ({{f1 .Percentile}}th percentile statewide)</p>

<h2>Risk Factor Analysis</h2>
<table>
<tr><th>Factor</th><th>Value</th></tr>
<tr><td>Heat Stress Index</td><td>{{f2 .County.Metrics.HeatStress}}</td></tr>
<tr><td>Drought Stress Index</td><td>{{f2 .County.Metrics.DroughtStress}}</td></tr>
<tr><td>Fire History Score</td><td>{{f2 .County.Metrics.FireHistory}}</td></tr>
<tr><td>WUI Exposure Score</td><td>{{f2 .County.Metrics.WUIExposure}}</td></tr>
<tr><td>Climate Trend</td><td>{{.County.ClimateTrend}}</td></tr>
<tr><td>Historical Fire Events</td><td>{{.County.FireCount}}</td></tr>
<tr><td>Total Population</td><td>{{.County.Population}}</td></tr>
<tr><td>Population at Risk</td><td>{{f1 .County.PopulationAtRisk}}</td></tr>
</table>
{{if .Declarations}}
<h2>Recent FEMA Declarations</h2>
<ul>
{{range .Declarations}}<li>{{.Title}} ({{.Date.Year}})</li>
{{end}}</ul>
{{end}}
</body>
</html>
`
