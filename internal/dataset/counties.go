// Package dataset loads the static input files the platform is built on:
// the integrated dashboard CSV, the geocoded FEMA declarations CSV, and
// the county centroid GeoJSON. Loaders parse and map; they own no scoring
// logic.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcurry/wa-firewatch/internal/models"
	"github.com/jcurry/wa-firewatch/internal/risk"
)

// Component score columns. These are strict: a missing or non-numeric
// value is an InvalidMetricError surfaced to the caller, never a silent
// zero.
const (
	colHeatStress    = "heat_stress"
	colDroughtStress = "drought_stress"
	colFireHistory   = "fire_history_score"
	colWUIExposure   = "wui_exposure_score"
)

// LoadCounties parses the dashboard CSV. Columns are resolved by header
// name so column order does not matter. The stored composite score column
// is ignored; assessments are recomputed from components downstream.
func LoadCounties(path string) ([]models.County, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening counties file: %w", err)
	}
	defer f.Close()

	return parseCounties(f)
}

func parseCounties(r io.Reader) ([]models.County, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per-field below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading counties header: %w", err)
	}

	cols := indexHeader(header)
	if _, ok := cols["county"]; !ok {
		return nil, fmt.Errorf("counties file missing County column")
	}

	var counties []models.County
	now := time.Now()
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading counties line %d: %w", line, err)
		}

		row := rowReader{cols: cols, record: record}
		name := strings.ToUpper(strings.TrimSpace(row.str("county")))
		if name == "" {
			return nil, fmt.Errorf("counties line %d: empty county name", line)
		}

		metrics := models.CountyMetrics{County: name}
		for _, c := range []struct {
			col string
			dst *float64
		}{
			{colHeatStress, &metrics.HeatStress},
			{colDroughtStress, &metrics.DroughtStress},
			{colFireHistory, &metrics.FireHistory},
			{colWUIExposure, &metrics.WUIExposure},
		} {
			v, err := row.component(name, c.col)
			if err != nil {
				return nil, err
			}
			*c.dst = v
		}

		var ferr error
		f := func(col string) float64 {
			v, err := row.float(col)
			if err != nil && ferr == nil {
				ferr = err
			}
			return v
		}
		county := models.County{
			Name:             name,
			Metrics:          metrics,
			ClimateTrend:     strings.TrimSpace(row.str("climate_trend")),
			Population:       int64(f("population")),
			PopulationAtRisk: f("population_at_risk"),
			FireCount:        int(f("fire_count")),
			WUIExposurePct:   f("wui_exposure_pct"),
			PctInterface:     f("pct_interface"),
			PctIntermix:      f("pct_intermix"),
			MeanPopDensity:   f("mean_pop_density"),
			HousingDensity:   f("avg_housing_density"),
			TmaxAnomaly:      f("tmax_z_mean"),
			PrcpAnomaly:      f("prcp_z_mean"),
			LoadedAt:         now,
		}
		if ferr != nil {
			return nil, fmt.Errorf("counties line %d: %w", line, ferr)
		}
		counties = append(counties, county)
	}

	return counties, nil
}

// indexHeader maps lower-cased column names to positions. The source
// datasets mix naming styles (County, Fire_Count, TMAX_Z_mean), so all
// lookups are case-insensitive.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

type rowReader struct {
	cols   map[string]int
	record []string
}

func (r rowReader) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

// float reads a descriptive numeric column. Absent or empty values become
// zero; anything else must parse. These columns are informational, but a
// garbled value still means a corrupt row, not a zero.
func (r rowReader) float(col string) (float64, error) {
	raw := strings.TrimSpace(r.str(col))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid numeric value %q", col, raw)
	}
	return v, nil
}

// component reads one of the four component score columns with the strict
// error contract.
func (r rowReader) component(county, col string) (float64, error) {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return 0, &risk.InvalidMetricError{County: county, Field: col}
	}
	raw := strings.TrimSpace(r.record[i])
	if raw == "" {
		return 0, &risk.InvalidMetricError{County: county, Field: col}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &risk.InvalidMetricError{County: county, Field: col, Value: raw}
	}
	return v, nil
}
