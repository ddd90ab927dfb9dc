package controllers

import (
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FeedController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewFeedController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *FeedController {
	return &FeedController{DB: db, Cfg: cfg, Logger: logger}
}

// GetFeed godoc
// @Summary Paginated public feed
// @Tags feed
// @Produce json
// @Param college query string false "College slug, case-insensitive"
// @Param major query string false "Major, case-insensitive"
// @Param level query string false "freshman, sophomore, junior or senior"
// @Param sort query string false "new (default), trending or popular"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, max 100" default(50)
// @Success 200 {object} utils.PaginatedResponse
// @Router /feed [get]
func (fc *FeedController) GetFeed(c *fiber.Ctx) error {
	utils.NoCache(c)

	filter := scheduleFilter{
		College:     c.Query("college"),
		Major:       c.Query("major"),
		Level:       c.Query("level"),
		FoldCollege: true,
	}
	page, limit := pageParams(c)

	var total int64
	if err := fc.DB.Scopes(liveSchedules, filter.Scope).Count(&total).Error; err != nil {
		fc.Logger.Printf("feed count: %v", err)
		return utils.InternalServerError(c, "Failed to fetch feed")
	}

	items := []models.Schedule{}
	if err := fc.DB.Scopes(liveSchedules, filter.Scope, sortSchedules(c.Query("sort", "new")), Paginate(page, limit)).
		Find(&items).Error; err != nil {
		fc.Logger.Printf("feed: %v", err)
		return utils.InternalServerError(c, "Failed to fetch feed")
	}

	return utils.Paginate(c, items, total, page, limit)
}
