package controllers

import (
	"context"
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	topLimit    = 10
	recentLimit = 10

	publicMetricsKey = "metrics:public"
)

type Totals struct {
	Users           int64 `json:"users"`
	Schedules       int64 `json:"schedules"`
	ReportsOpen     int64 `json:"reportsOpen"`
	ReactionsUp     int64 `json:"reactionsUp"`
	ReactionsDown   int64 `json:"reactionsDown"`
	Comments        int64 `json:"comments"`
	NewSchedules24h int64 `json:"newSchedules24h"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type RecentSchedule struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	College   string `json:"college"`
	Major     string `json:"major"`
	Level     string `json:"level"`
	Up        int    `json:"up"`
	Down      int    `json:"down"`
	Comments  int    `json:"comments"`
	CreatedAt int64  `json:"createdAt"` // unix ms
}

type OpenReport struct {
	ID         string `json:"id"`
	ScheduleID string `json:"scheduleId"`
	Reason     string `json:"reason"`
	CreatedAt  int64  `json:"createdAt"` // unix ms
}

type ServerInfo struct {
	UptimeSec int64  `json:"uptimeSec"`
	MemMB     uint64 `json:"memMB"`
	GoVersion string `json:"goVersion"`
	Env       string `json:"env"`
}

type Metrics struct {
	Totals      Totals           `json:"totals"`
	TopColleges []NameCount      `json:"topColleges"`
	TopMajors   []NameCount      `json:"topMajors"`
	Recent      []RecentSchedule `json:"recent"`
	OpenReports []OpenReport     `json:"openReports"`
	Server      ServerInfo       `json:"server"`
}

// PublicMetrics is the small summary shown on the landing page.
type PublicMetrics struct {
	Users       int64 `json:"users"`
	Impressions int64 `json:"impressions"`
	Posts       int64 `json:"posts"`
	Colleges    int64 `json:"colleges"`
}

type AnalyticsController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Cache   utils.Cache
	Logger  *log.Logger
	started time.Time
	now     func() time.Time
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config, cache utils.Cache, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{
		DB:      db,
		Cfg:     cfg,
		Cache:   cache,
		Logger:  logger,
		started: time.Now(),
		now:     time.Now,
	}
}

// GetMetrics godoc
// @Summary Admin dashboard metrics
// @Tags admin
// @Produce json
// @Success 200 {object} Metrics
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/metrics [get]
func (ac *AnalyticsController) GetMetrics(c *fiber.Ctx) error {
	utils.NoCache(c)

	metrics, err := BuildMetrics(ac.DB.WithContext(c.UserContext()), ac.now())
	if err != nil {
		ac.Logger.Printf("build metrics: %v", err)
		return utils.InternalServerError(c, "Failed to build metrics")
	}
	metrics.Server = ac.serverInfo()

	return c.JSON(metrics)
}

func (ac *AnalyticsController) serverInfo() ServerInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return ServerInfo{
		UptimeSec: int64(time.Since(ac.started).Round(time.Second) / time.Second),
		MemMB:     mem.Sys / (1024 * 1024),
		GoVersion: runtime.Version(),
		Env:       ac.Cfg.Env,
	}
}

// BuildMetrics aggregates the dashboard numbers. Soft-deleted schedules are not counted.
func BuildMetrics(db *gorm.DB, now time.Time) (*Metrics, error) {
	m := &Metrics{
		TopColleges: []NameCount{},
		TopMajors:   []NameCount{},
		Recent:      []RecentSchedule{},
		OpenReports: []OpenReport{},
	}

	if err := db.Model(&models.User{}).Count(&m.Totals.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Schedule{}).Count(&m.Totals.Schedules).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Report{}).Where("status = ?", models.ReportOpen).
		Count(&m.Totals.ReportsOpen).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Schedule{}).Where("created_at >= ?", now.Add(-24*time.Hour)).
		Count(&m.Totals.NewSchedules24h).Error; err != nil {
		return nil, err
	}

	var sums struct {
		Up       int64
		Down     int64
		Comments int64
	}
	if err := db.Model(&models.Schedule{}).
		Select("COALESCE(SUM(reactions_up), 0) AS up, COALESCE(SUM(reactions_down), 0) AS down, COALESCE(SUM(comments_count), 0) AS comments").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	m.Totals.ReactionsUp = sums.Up
	m.Totals.ReactionsDown = sums.Down
	m.Totals.Comments = sums.Comments

	var err error
	if m.TopColleges, err = topBy(db, "college_slug"); err != nil {
		return nil, err
	}
	if m.TopMajors, err = topBy(db, "major"); err != nil {
		return nil, err
	}

	var recent []models.Schedule
	if err := db.Order("created_at DESC").Limit(recentLimit).Find(&recent).Error; err != nil {
		return nil, err
	}
	for _, s := range recent {
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		m.Recent = append(m.Recent, RecentSchedule{
			ID:        s.ID,
			Title:     title,
			College:   orUnknown(s.CollegeSlug),
			Major:     orUnknown(s.Major),
			Level:     orUnknown(s.Level),
			Up:        s.Reactions.Up,
			Down:      s.Reactions.Down,
			Comments:  s.CommentsCount,
			CreatedAt: s.CreatedAt.UnixMilli(),
		})
	}

	var reports []models.Report
	if err := db.Where("status = ?", models.ReportOpen).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	for _, r := range reports {
		m.OpenReports = append(m.OpenReports, OpenReport{
			ID:         r.ID,
			ScheduleID: r.ScheduleID,
			Reason:     r.Reason,
			CreatedAt:  r.CreatedAt.UnixMilli(),
		})
	}

	return m, nil
}

// topBy counts live schedules per value of column, most common first, ties by name.
func topBy(db *gorm.DB, column string) ([]NameCount, error) {
	rows := []NameCount{}
	err := db.Model(&models.Schedule{}).
		Select(column + " AS name, COUNT(*) AS count").
		Where(column + " <> ''").
		Group(column).
		Order("count DESC").
		Order("name ASC").
		Limit(topLimit).
		Scan(&rows).Error
	return rows, err
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

// GetPublicMetrics godoc
// @Summary Landing page counters
// @Tags metrics
// @Produce json
// @Success 200 {object} PublicMetrics
// @Router /metrics [get]
func (ac *AnalyticsController) GetPublicMetrics(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var cached PublicMetrics
	if ok, err := ac.Cache.Get(ctx, publicMetricsKey, &cached); err != nil {
		ac.Logger.Printf("cache get %s: %v", publicMetricsKey, err)
	} else if ok {
		return c.JSON(cached)
	}

	metrics, err := ac.publicMetrics(ctx)
	if err != nil {
		ac.Logger.Printf("public metrics: %v", err)
		return utils.InternalServerError(c, "Failed to build metrics")
	}

	if err := ac.Cache.Set(ctx, publicMetricsKey, metrics, ac.Cfg.CacheTTL); err != nil {
		ac.Logger.Printf("cache set %s: %v", publicMetricsKey, err)
	}
	return c.JSON(metrics)
}

func (ac *AnalyticsController) publicMetrics(ctx context.Context) (PublicMetrics, error) {
	db := ac.DB.WithContext(ctx)
	var pm PublicMetrics

	if err := db.Model(&models.User{}).Count(&pm.Users).Error; err != nil {
		return pm, err
	}
	if err := db.Model(&models.Schedule{}).Count(&pm.Posts).Error; err != nil {
		return pm, err
	}
	if err := db.Model(&models.College{}).Count(&pm.Colleges).Error; err != nil {
		return pm, err
	}
	if err := db.Model(&models.Schedule{}).
		Select("COALESCE(SUM(reactions_up + reactions_down), 0)").
		Scan(&pm.Impressions).Error; err != nil {
		return pm, err
	}
	return pm, nil
}
