package repository

import (
	"context"
	"time"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// Filter narrows county listings. Nil pointer fields are ignored.
type Filter struct {
	Categories    []models.RiskCategory
	MinCategory   *models.RiskCategory // >= this category (e.g. High includes High and Critical)
	Trends        []models.ClimateTrend
	MinScore      *float64
	MaxScore      *float64
	MinPopulation *int64
	Region        string // "eastern", "western", or empty for statewide
	Limit         int
	Offset        int
}

// DeclFilter narrows declaration listings.
type DeclFilter struct {
	County string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

type CountyRepository interface {
	UpsertCounty(ctx context.Context, c *models.County) error
	GetCounty(ctx context.Context, name string) (*models.County, error)
	ListCounties(ctx context.Context, opts Filter) ([]models.County, error)
	CountyNames(ctx context.Context) ([]string, error)
}

type DeclarationRepository interface {
	UpsertDeclaration(ctx context.Context, d *models.Declaration) error
	ListDeclarations(ctx context.Context, opts DeclFilter) ([]models.Declaration, error)
}

// Repository is the full storage surface the service wires up.
type Repository interface {
	CountyRepository
	DeclarationRepository
}
