package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcurry/wa-firewatch/internal/analytics"
	"github.com/jcurry/wa-firewatch/internal/geo"
	"github.com/jcurry/wa-firewatch/internal/models"
	"github.com/jcurry/wa-firewatch/internal/observability"
	"github.com/jcurry/wa-firewatch/internal/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 500
	maxCompare   = 5
)

// Reloader triggers a forced dataset refresh.
type Reloader interface {
	Reload(ctx context.Context) error
}

type Handler struct {
	repo      repository.Repository
	reloader  Reloader
	metrics   *observability.Metrics
	jwtSecret string
}

func NewHandler(repo repository.Repository, reloader Reloader, metrics *observability.Metrics, jwtSecret string) *Handler {
	return &Handler{
		repo:      repo,
		reloader:  reloader,
		metrics:   metrics,
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api/counties", h.getCounties)
	r.GET("/api/counties/nearby", h.getNearbyCounties)
	r.GET("/api/counties/:name", h.getCounty)
	r.GET("/api/summary", h.getSummary)
	r.GET("/api/declarations", h.getDeclarations)

	r.GET("/api/analytics/correlation", h.getCorrelation)
	r.GET("/api/analytics/matrix", h.getCorrelationMatrix)
	r.GET("/api/analytics/trends", h.getTrends)
	r.GET("/api/analytics/seasonal", h.getSeasonal)
	r.POST("/api/analytics/scenario", h.postScenario)
	r.GET("/api/analytics/compare", h.getCompare)

	admin := r.Group("/api/admin", JWTMiddleware(h.jwtSecret))
	admin.POST("/reload", h.postReload)
}

// MetricsMiddleware counts requests per route and status.
func (h *Handler) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		h.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getCounties(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	counties, err := h.repo.ListCounties(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	fc := toGeoJSON(counties)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func parseFilter(c *gin.Context) (repository.Filter, error) {
	filter := repository.Filter{
		Limit: defaultLimit,
	}

	for _, cat := range c.QueryArray("category") {
		parsed, ok := parseCategory(cat)
		if !ok {
			return filter, errors.New("unknown category " + strconv.Quote(cat))
		}
		filter.Categories = append(filter.Categories, parsed)
	}
	if mc := c.Query("min_category"); mc != "" {
		parsed, ok := parseCategory(mc)
		if !ok {
			return filter, errors.New("unknown category " + strconv.Quote(mc))
		}
		filter.MinCategory = &parsed
	}
	filter.Trends = append(filter.Trends, c.QueryArray("trend")...)
	if s := c.Query("min_score"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			filter.MinScore = &v
		}
	}
	if s := c.Query("max_score"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			filter.MaxScore = &v
		}
	}
	if p := c.Query("min_population"); p != "" {
		if v, err := strconv.ParseInt(p, 10, 64); err == nil {
			filter.MinPopulation = &v
		}
	}
	if region := c.Query("region"); region != "" {
		region = strings.ToLower(region)
		if region != repository.RegionEastern && region != repository.RegionWestern {
			return filter, errors.New("region must be eastern or western")
		}
		filter.Region = region
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= maxLimit {
			filter.Limit = lim
		}
	}
	if o := c.Query("offset"); o != "" {
		if off, err := strconv.Atoi(o); err == nil && off >= 0 {
			filter.Offset = off
		}
	}
	return filter, nil
}

func parseCategory(s string) (models.RiskCategory, bool) {
	switch strings.ToLower(s) {
	case "low":
		return models.RiskCategoryLow, true
	case "moderate":
		return models.RiskCategoryModerate, true
	case "high":
		return models.RiskCategoryHigh, true
	case "critical":
		return models.RiskCategoryCritical, true
	default:
		return "", false
	}
}

func (h *Handler) getCounty(c *gin.Context) {
	name := c.Param("name")

	county, err := h.repo.GetCounty(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "county not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch county"})
		return
	}

	decls, err := h.repo.ListDeclarations(c.Request.Context(), repository.DeclFilter{County: county.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch declarations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"county":       county,
		"declarations": decls,
	})
}

func (h *Handler) getNearbyCounties(c *gin.Context) {
	// Defaults to the state map center when no point is given.
	lat, lon := geo.StateCenter.Latitude, geo.StateCenter.Longitude
	if c.Query("lat") != "" || c.Query("lon") != "" {
		var latErr, lonErr error
		lat, latErr = strconv.ParseFloat(c.Query("lat"), 64)
		lon, lonErr = strconv.ParseFloat(c.Query("lon"), 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon must both be numeric"})
			return
		}
	}
	radiusKm := 100.0
	if r := c.Query("radius_km"); r != "" {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be a positive number"})
			return
		}
		radiusKm = v
	}

	counties, err := h.repo.ListCounties(c.Request.Context(), repository.Filter{Limit: maxLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"center":    gin.H{"lat": lat, "lon": lon},
		"radius_km": radiusKm,
		"counties":  geo.WithinRadius(counties, lat, lon, radiusKm),
	})
}

func (h *Handler) getSummary(c *gin.Context) {
	counties, err := h.repo.ListCounties(c.Request.Context(), repository.Filter{Limit: maxLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	c.JSON(http.StatusOK, analytics.Summarize(counties))
}

func (h *Handler) getDeclarations(c *gin.Context) {
	filter := repository.DeclFilter{
		Limit: defaultLimit,
	}
	if county := c.Query("county"); county != "" {
		filter.County = strings.ToUpper(county)
	}
	if s := c.Query("since"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be YYYY-MM-DD"})
			return
		}
		filter.Since = &t
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= maxLimit {
			filter.Limit = lim
		}
	}

	decls, err := h.repo.ListDeclarations(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch declarations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(decls),
		"declarations": decls,
	})
}

func (h *Handler) getCorrelation(c *gin.Context) {
	x, y := c.Query("x"), c.Query("y")
	if x == "" || y == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "x and y variables are required",
			"variables": analytics.VariableNames(),
		})
		return
	}

	counties, err := h.repo.ListCounties(c.Request.Context(), repository.Filter{Limit: maxLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	xs, err := analytics.ExtractVariable(counties, x)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "variables": analytics.VariableNames()})
		return
	}
	ys, err := analytics.ExtractVariable(counties, y)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "variables": analytics.VariableNames()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"x":          x,
		"y":          y,
		"n":          len(counties),
		"pearson":    analytics.PearsonCorrelation(xs, ys),
		"spearman":   analytics.SpearmanCorrelation(xs, ys),
		"regression": analytics.LinearRegression(xs, ys),
	})
}

func (h *Handler) getCorrelationMatrix(c *gin.Context) {
	counties, err := h.repo.ListCounties(c.Request.Context(), repository.Filter{Limit: maxLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variables": analytics.MatrixVariables,
		"matrix":    analytics.CorrelationMatrix(counties),
	})
}

func (h *Handler) getTrends(c *gin.Context) {
	decls, err := h.repo.ListDeclarations(c.Request.Context(), repository.DeclFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch declarations"})
		return
	}

	yearly := analytics.YearlyCounts(decls)
	c.JSON(http.StatusOK, gin.H{
		"yearly":     yearly,
		"trend":      analytics.TrendLine(yearly),
		"projection": analytics.Project(yearly, 5),
	})
}

func (h *Handler) getSeasonal(c *gin.Context) {
	decls, err := h.repo.ListDeclarations(c.Request.Context(), repository.DeclFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch declarations"})
		return
	}

	monthly := analytics.MonthlyCounts(decls)
	c.JSON(http.StatusOK, gin.H{
		"monthly": monthly,
		"peak":    analytics.PeakMonth(monthly),
	})
}

func (h *Handler) postScenario(c *gin.Context) {
	var in analytics.ScenarioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario input"})
		return
	}

	counties, err := h.repo.ListCounties(c.Request.Context(), repository.Filter{Limit: maxLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counties"})
		return
	}

	c.JSON(http.StatusOK, analytics.RunScenario(counties, in))
}

func (h *Handler) getCompare(c *gin.Context) {
	names := c.QueryArray("county")
	if len(names) < 2 || len(names) > maxCompare {
		c.JSON(http.StatusBadRequest, gin.H{"error": "between two and five county parameters are required"})
		return
	}

	counties := make([]models.County, 0, len(names))
	for _, name := range names {
		county, err := h.repo.GetCounty(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "county not found: " + name})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch county"})
			return
		}
		counties = append(counties, *county)
	}

	c.JSON(http.StatusOK, gin.H{
		"counties": analytics.Compare(counties),
	})
}

func (h *Handler) postReload(c *gin.Context) {
	if h.reloader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh manager not running"})
		return
	}
	if err := h.reloader.Reload(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
