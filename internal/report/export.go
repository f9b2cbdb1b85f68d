package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jcurry/wa-firewatch/internal/models"
)

var exportHeader = []string{
	"County", "risk_score", "risk_category", "climate_trend",
	"heat_stress", "drought_stress", "fire_history_score", "wui_exposure_score",
	"population", "population_at_risk", "Fire_Count",
}

// ExportCSV writes assessed county rows to a timestamped file in dir,
// named <prefix>_YYYYMMDD_HHMMSS.csv, and returns the path.
func ExportCSV(dir, prefix string, counties []models.County) (string, error) {
	name := fmt.Sprintf("%s_%s.csv", prefix, clock.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return "", fmt.Errorf("writing export header: %w", err)
	}
	for _, c := range counties {
		row := []string{
			c.Name,
			strconv.FormatFloat(c.Assessment.Score, 'f', 2, 64),
			string(c.Assessment.Category),
			c.ClimateTrend,
			strconv.FormatFloat(c.Metrics.HeatStress, 'f', 2, 64),
			strconv.FormatFloat(c.Metrics.DroughtStress, 'f', 2, 64),
			strconv.FormatFloat(c.Metrics.FireHistory, 'f', 2, 64),
			strconv.FormatFloat(c.Metrics.WUIExposure, 'f', 2, 64),
			strconv.FormatInt(c.Population, 10),
			strconv.FormatFloat(c.PopulationAtRisk, 'f', 0, 64),
			strconv.Itoa(c.FireCount),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing export row for %s: %w", c.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing export: %w", err)
	}

	return path, nil
}
