package analytics

import (
	"sort"
	"time"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// YearCount is the number of declarations in one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthCount is the number of declarations in one calendar month across
// all years.
type MonthCount struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Count int        `json:"count"`
}

// YearlyCounts aggregates declarations per year, ascending, with gap
// years filled with zero so trend fits see the full span.
func YearlyCounts(decls []models.Declaration) []YearCount {
	if len(decls) == 0 {
		return nil
	}
	byYear := make(map[int]int)
	minYear, maxYear := decls[0].Date.Year(), decls[0].Date.Year()
	for _, d := range decls {
		y := d.Date.Year()
		byYear[y]++
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	counts := make([]YearCount, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		counts = append(counts, YearCount{Year: y, Count: byYear[y]})
	}
	return counts
}

// MonthlyCounts aggregates declarations per calendar month across the
// whole range, January through December.
func MonthlyCounts(decls []models.Declaration) []MonthCount {
	byMonth := make(map[time.Month]int)
	for _, d := range decls {
		byMonth[d.Date.Month()]++
	}

	counts := make([]MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		counts = append(counts, MonthCount{Month: m, Name: m.String()[:3], Count: byMonth[m]})
	}
	return counts
}

// PeakMonth returns the month with the most declarations.
func PeakMonth(counts []MonthCount) MonthCount {
	var peak MonthCount
	for _, mc := range counts {
		if mc.Count > peak.Count {
			peak = mc
		}
	}
	return peak
}

// TrendLine fits a least-squares line through the yearly counts.
func TrendLine(counts []YearCount) Regression {
	x := make([]float64, len(counts))
	y := make([]float64, len(counts))
	for i, yc := range counts {
		x[i] = float64(yc.Year)
		y[i] = float64(yc.Count)
	}
	return LinearRegression(x, y)
}

// recentWindowYears limits the projection fit to the recent record, as the
// dashboard's forecast does.
const recentWindowYears = 10

// Projection is one forecast year.
type Projection struct {
	Year      int     `json:"year"`
	Projected float64 `json:"projected"`
}

// Project extrapolates declaration counts n years past the last observed
// year, fitting only the most recent window.
func Project(counts []YearCount, n int) []Projection {
	if len(counts) == 0 || n < 1 {
		return nil
	}

	sorted := make([]YearCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Year < sorted[b].Year })

	recent := sorted
	if len(recent) > recentWindowYears {
		recent = recent[len(recent)-recentWindowYears:]
	}
	fit := TrendLine(recent)

	lastYear := sorted[len(sorted)-1].Year
	out := make([]Projection, 0, n)
	for i := 1; i <= n; i++ {
		year := lastYear + i
		out = append(out, Projection{Year: year, Projected: fit.Predict(float64(year))})
	}
	return out
}
