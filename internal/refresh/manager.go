// Package refresh keeps the county store in sync with the dashboard
// dataset files on disk, recomputing risk assessments on every cycle.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jcurry/wa-firewatch/internal/alert"
	"github.com/jcurry/wa-firewatch/internal/config"
	"github.com/jcurry/wa-firewatch/internal/dataset"
	"github.com/jcurry/wa-firewatch/internal/models"
	"github.com/jcurry/wa-firewatch/internal/observability"
	"github.com/jcurry/wa-firewatch/internal/repository"
	"github.com/jcurry/wa-firewatch/internal/risk"
	"github.com/jcurry/wa-firewatch/internal/worker"
)

type Manager struct {
	cfg       *config.Config
	repo      repository.Repository
	publisher alert.Publisher
	metrics   *observability.Metrics
	pool      *worker.Pool
	wg        sync.WaitGroup

	mu       sync.Mutex
	lastSeen map[string]time.Time // dataset path -> mtime of last successful load
}

func NewManager(cfg *config.Config, repo repository.Repository, publisher alert.Publisher, metrics *observability.Metrics) *Manager {
	return &Manager{
		cfg:       cfg,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		lastSeen:  make(map[string]time.Time),
	}
}

// Start loads the datasets once, then watches them for changes at the
// configured interval. The initial load error is returned so the service
// does not come up empty.
func (m *Manager) Start(ctx context.Context) error {
	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize)
	m.pool.Start(ctx)
	m.metrics.RefreshRunning.Set(1)

	if err := m.Reload(ctx); err != nil {
		return err
	}

	m.wg.Add(1)
	go m.watch(ctx)
	return nil
}

func (m *Manager) watch(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting dataset watcher", "interval", m.cfg.Data.RefreshInterval)

	ticker := time.NewTicker(m.cfg.Data.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dataset watcher shutting down")
			return
		case <-ticker.C:
			if !m.changed() {
				slog.Debug("datasets unchanged, skipping refresh")
				continue
			}
			if err := m.Reload(ctx); err != nil {
				slog.Error("refresh failed", "error", err)
			}
		}
	}
}

// changed reports whether any dataset file has a newer mtime than the
// last successful load. Missing files count as unchanged.
func (m *Manager) changed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, path := range m.paths() {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(m.lastSeen[path]) {
			return true
		}
	}
	return false
}

func (m *Manager) paths() []string {
	paths := []string{m.cfg.Data.CountiesPath}
	if m.cfg.Data.DeclarationsPath != "" {
		paths = append(paths, m.cfg.Data.DeclarationsPath)
	}
	if m.cfg.Data.CentroidsPath != "" {
		paths = append(paths, m.cfg.Data.CentroidsPath)
	}
	return paths
}

// Reload runs a full load-assess-store cycle. Counties with invalid
// component scores abort the cycle so a bad file never half-replaces the
// previous dataset.
func (m *Manager) Reload(ctx context.Context) error {
	start := time.Now()

	counties, err := dataset.LoadCounties(m.cfg.Data.CountiesPath)
	if err != nil {
		m.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return err
	}

	centroids := map[string]dataset.Centroid{}
	if m.cfg.Data.CentroidsPath != "" {
		centroids, err = dataset.LoadCentroids(m.cfg.Data.CentroidsPath)
		if err != nil {
			slog.Warn("centroids unavailable, proximity queries degraded", "error", err)
			centroids = map[string]dataset.Centroid{}
		}
	}

	var (
		alertsMu sync.Mutex
		alerts   []alert.CountyAlert
		jobWG    sync.WaitGroup
		errMu    sync.Mutex
		jobErrs  []error
	)

	loadedAt := time.Now().UTC()
	for i := range counties {
		county := &counties[i]
		jobWG.Add(1)
		m.pool.Submit(func(ctx context.Context) error {
			defer jobWG.Done()

			if err := ctx.Err(); err != nil {
				errMu.Lock()
				jobErrs = append(jobErrs, err)
				errMu.Unlock()
				return nil
			}
			if a, err := m.assessAndStore(ctx, county, centroids, loadedAt); err != nil {
				errMu.Lock()
				jobErrs = append(jobErrs, err)
				errMu.Unlock()
				return err
			} else if a != nil {
				alertsMu.Lock()
				alerts = append(alerts, *a)
				alertsMu.Unlock()
			}
			return nil
		})
	}
	jobWG.Wait()

	if len(jobErrs) > 0 {
		m.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return errors.Join(jobErrs...)
	}

	if m.cfg.Data.DeclarationsPath != "" {
		if err := m.loadDeclarations(ctx, centroids); err != nil {
			slog.Warn("declarations unavailable", "error", err)
		}
	}

	if len(alerts) > 0 {
		if err := m.publisher.Publish(ctx, alerts); err != nil {
			slog.Error("failed to publish risk alerts", "count", len(alerts), "error", err)
		} else {
			m.metrics.AlertsPublished.Add(float64(len(alerts)))
			slog.Info("published risk alerts", "count", len(alerts))
		}
	}

	m.markSeen()
	m.metrics.RefreshRuns.WithLabelValues("success").Inc()
	m.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	slog.Info("refresh complete", "counties", len(counties), "alerts", len(alerts), "duration", time.Since(start))
	return nil
}

// assessAndStore recomputes the risk assessment for a county, persists
// it, and returns an alert when the county newly enters the High or
// Critical band.
func (m *Manager) assessAndStore(ctx context.Context, county *models.County, centroids map[string]dataset.Centroid, loadedAt time.Time) (*alert.CountyAlert, error) {
	county.Assessment = risk.Assess(county.Metrics)
	county.LoadedAt = loadedAt
	m.metrics.AssessmentsComputed.Inc()

	if c, ok := centroids[county.Name]; ok {
		county.Latitude = c.Latitude
		county.Longitude = c.Longitude
		if county.FIPS == "" {
			county.FIPS = c.FIPS
		}
	}

	var prev models.RiskCategory
	if existing, err := m.repo.GetCounty(ctx, county.Name); err == nil {
		prev = existing.Assessment.Category
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := m.repo.UpsertCounty(ctx, county); err != nil {
		slog.Error("error storing county", "county", county.Name, "error", err)
		return nil, err
	}

	if shouldAlert(prev, county.Assessment.Category) {
		return &alert.CountyAlert{
			County:           county.Name,
			RiskScore:        county.Assessment.Score,
			RiskCategory:     county.Assessment.Category,
			PreviousCategory: prev,
			ClimateTrend:     county.ClimateTrend,
			PopulationAtRisk: county.PopulationAtRisk,
			AssessedAt:       loadedAt,
		}, nil
	}
	return nil, nil
}

func (m *Manager) loadDeclarations(ctx context.Context, centroids map[string]dataset.Centroid) error {
	decls, err := dataset.LoadDeclarations(m.cfg.Data.DeclarationsPath)
	if err != nil {
		return err
	}
	for i := range decls {
		d := &decls[i]
		if c, ok := centroids[d.County]; ok {
			d.Latitude = c.Latitude
			d.Longitude = c.Longitude
		}
		if err := m.repo.UpsertDeclaration(ctx, d); err != nil {
			slog.Error("error storing declaration", "number", d.Number, "error", err)
			return err
		}
	}
	slog.Info("loaded declarations", "count", len(decls))
	return nil
}

func (m *Manager) markSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range m.paths() {
		if info, err := os.Stat(path); err == nil {
			m.lastSeen[path] = info.ModTime()
		}
	}
}

func (m *Manager) Stop() {
	m.wg.Wait()
	if m.pool != nil {
		m.pool.Stop()
	}
	m.metrics.RefreshRunning.Set(0)
	slog.Info("refresh manager stopped")
}

// shouldAlert returns true when a county enters the High or Critical
// band from a lower one, or escalates High to Critical.
func shouldAlert(prev, cur models.RiskCategory) bool {
	if cur != models.RiskCategoryHigh && cur != models.RiskCategoryCritical {
		return false
	}
	if prev == "" {
		return true
	}
	return cur.Rank() > prev.Rank()
}
