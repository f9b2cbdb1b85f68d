package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS counties (
			name TEXT PRIMARY KEY,
			fips TEXT,
			heat_stress REAL NOT NULL,
			drought_stress REAL NOT NULL,
			fire_history_score REAL NOT NULL,
			wui_exposure_score REAL NOT NULL,
			climate_trend TEXT,
			population INTEGER,
			population_at_risk REAL,
			fire_count INTEGER,
			wui_exposure_pct REAL,
			pct_interface REAL,
			pct_intermix REAL,
			mean_pop_density REAL,
			avg_housing_density REAL,
			tmax_anomaly REAL,
			prcp_anomaly REAL,
			latitude REAL,
			longitude REAL,
			risk_score REAL NOT NULL,
			risk_category TEXT NOT NULL,
			loaded_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS declarations (
			number TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			county TEXT NOT NULL,
			date DATETIME NOT NULL,
			latitude REAL,
			longitude REAL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_counties_category ON counties(risk_category);
		CREATE INDEX IF NOT EXISTS idx_counties_score ON counties(risk_score);
		CREATE INDEX IF NOT EXISTS idx_declarations_county ON declarations(county);
		CREATE INDEX IF NOT EXISTS idx_declarations_date ON declarations(date);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) UpsertCounty(ctx context.Context, c *models.County) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counties (
			name, fips, heat_stress, drought_stress, fire_history_score,
			wui_exposure_score, climate_trend, population, population_at_risk,
			fire_count, wui_exposure_pct, pct_interface, pct_intermix,
			mean_pop_density, avg_housing_density, tmax_anomaly, prcp_anomaly,
			latitude, longitude, risk_score, risk_category, loaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			fips = excluded.fips,
			heat_stress = excluded.heat_stress,
			drought_stress = excluded.drought_stress,
			fire_history_score = excluded.fire_history_score,
			wui_exposure_score = excluded.wui_exposure_score,
			climate_trend = excluded.climate_trend,
			population = excluded.population,
			population_at_risk = excluded.population_at_risk,
			fire_count = excluded.fire_count,
			wui_exposure_pct = excluded.wui_exposure_pct,
			pct_interface = excluded.pct_interface,
			pct_intermix = excluded.pct_intermix,
			mean_pop_density = excluded.mean_pop_density,
			avg_housing_density = excluded.avg_housing_density,
			tmax_anomaly = excluded.tmax_anomaly,
			prcp_anomaly = excluded.prcp_anomaly,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			risk_score = excluded.risk_score,
			risk_category = excluded.risk_category,
			loaded_at = excluded.loaded_at`,
		c.Name, c.FIPS, c.Metrics.HeatStress, c.Metrics.DroughtStress,
		c.Metrics.FireHistory, c.Metrics.WUIExposure, c.ClimateTrend,
		c.Population, c.PopulationAtRisk, c.FireCount, c.WUIExposurePct,
		c.PctInterface, c.PctIntermix, c.MeanPopDensity, c.HousingDensity,
		c.TmaxAnomaly, c.PrcpAnomaly, c.Latitude, c.Longitude,
		c.Assessment.Score, string(c.Assessment.Category), c.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting county %s: %w", c.Name, err)
	}
	return nil
}

const countyColumns = `name, fips, heat_stress, drought_stress, fire_history_score,
	wui_exposure_score, climate_trend, population, population_at_risk,
	fire_count, wui_exposure_pct, pct_interface, pct_intermix,
	mean_pop_density, avg_housing_density, tmax_anomaly, prcp_anomaly,
	latitude, longitude, risk_score, risk_category, loaded_at`

func (s *SQLiteDB) GetCounty(ctx context.Context, name string) (*models.County, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+countyColumns+" FROM counties WHERE name = ?",
		strings.ToUpper(name),
	)
	c, err := scanCounty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting county %s: %w", name, err)
	}
	return c, nil
}

func (s *SQLiteDB) ListCounties(ctx context.Context, opts Filter) ([]models.County, error) {
	query := "SELECT " + countyColumns + " FROM counties"
	var conds []string
	var args []any

	if len(opts.Categories) > 0 {
		placeholders := make([]string, len(opts.Categories))
		for i, cat := range opts.Categories {
			placeholders[i] = "?"
			args = append(args, string(cat))
		}
		conds = append(conds, "risk_category IN ("+strings.Join(placeholders, ", ")+")")
	}
	if opts.MinCategory != nil {
		names := categoriesAtOrAbove(*opts.MinCategory)
		placeholders := make([]string, len(names))
		for i, cat := range names {
			placeholders[i] = "?"
			args = append(args, string(cat))
		}
		conds = append(conds, "risk_category IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(opts.Trends) > 0 {
		placeholders := make([]string, len(opts.Trends))
		for i, tr := range opts.Trends {
			placeholders[i] = "?"
			args = append(args, tr)
		}
		conds = append(conds, "climate_trend IN ("+strings.Join(placeholders, ", ")+")")
	}
	if opts.MinScore != nil {
		conds = append(conds, "risk_score >= ?")
		args = append(args, *opts.MinScore)
	}
	if opts.MaxScore != nil {
		conds = append(conds, "risk_score <= ?")
		args = append(args, *opts.MaxScore)
	}
	if opts.MinPopulation != nil {
		conds = append(conds, "population >= ?")
		args = append(args, *opts.MinPopulation)
	}
	if opts.Region != "" {
		names := EasternCounties()
		placeholders := make([]string, len(names))
		for i, name := range names {
			placeholders[i] = "?"
			args = append(args, name)
		}
		in := "name IN (" + strings.Join(placeholders, ", ") + ")"
		if opts.Region == RegionEastern {
			conds = append(conds, in)
		} else {
			conds = append(conds, "NOT ("+in+")")
		}
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY risk_score DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing counties: %w", err)
	}
	defer rows.Close()

	var counties []models.County
	for rows.Next() {
		c, err := scanCounty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning county: %w", err)
		}
		counties = append(counties, *c)
	}
	return counties, rows.Err()
}

func (s *SQLiteDB) CountyNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM counties ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("error listing county names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteDB) UpsertDeclaration(ctx context.Context, d *models.Declaration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO declarations (number, title, county, date, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			title = excluded.title,
			county = excluded.county,
			date = excluded.date,
			latitude = excluded.latitude,
			longitude = excluded.longitude`,
		d.Number, d.Title, d.County, d.Date, d.Latitude, d.Longitude, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting declaration %s: %w", d.Number, err)
	}
	return nil
}

func (s *SQLiteDB) ListDeclarations(ctx context.Context, opts DeclFilter) ([]models.Declaration, error) {
	query := "SELECT number, title, county, date, latitude, longitude, created_at FROM declarations"
	var conds []string
	var args []any

	if opts.County != "" {
		conds = append(conds, "county = ?")
		args = append(args, strings.ToUpper(opts.County))
	}
	if opts.Since != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *opts.Since)
	}
	if opts.Until != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *opts.Until)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing declarations: %w", err)
	}
	defer rows.Close()

	var decls []models.Declaration
	for rows.Next() {
		var d models.Declaration
		if err := rows.Scan(&d.Number, &d.Title, &d.County, &d.Date,
			&d.Latitude, &d.Longitude, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning declaration: %w", err)
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCounty(row scanner) (*models.County, error) {
	var c models.County
	var category string
	err := row.Scan(
		&c.Name, &c.FIPS, &c.Metrics.HeatStress, &c.Metrics.DroughtStress,
		&c.Metrics.FireHistory, &c.Metrics.WUIExposure, &c.ClimateTrend,
		&c.Population, &c.PopulationAtRisk, &c.FireCount, &c.WUIExposurePct,
		&c.PctInterface, &c.PctIntermix, &c.MeanPopDensity, &c.HousingDensity,
		&c.TmaxAnomaly, &c.PrcpAnomaly, &c.Latitude, &c.Longitude,
		&c.Assessment.Score, &category, &c.LoadedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Metrics.County = c.Name
	c.Assessment.Category = models.RiskCategory(category)
	return &c, nil
}

func categoriesAtOrAbove(min models.RiskCategory) []models.RiskCategory {
	all := []models.RiskCategory{
		models.RiskCategoryLow,
		models.RiskCategoryModerate,
		models.RiskCategoryHigh,
		models.RiskCategoryCritical,
	}
	var out []models.RiskCategory
	for _, cat := range all {
		if cat.Rank() >= min.Rank() {
			out = append(out, cat)
		}
	}
	return out
}
