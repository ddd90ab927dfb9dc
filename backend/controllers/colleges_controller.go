package controllers

import (
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const collegesKey = "colleges"

type CollegesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Cache  utils.Cache
	Logger *log.Logger
}

func NewCollegesController(db *gorm.DB, cfg *config.Config, cache utils.Cache, logger *log.Logger) *CollegesController {
	return &CollegesController{DB: db, Cfg: cfg, Cache: cache, Logger: logger}
}

// ListColleges godoc
// @Summary All known colleges, ordered by name
// @Tags colleges
// @Produce json
// @Success 200 {array} models.College
// @Router /colleges [get]
func (cc *CollegesController) ListColleges(c *fiber.Ctx) error {
	ctx := c.UserContext()

	colleges := []models.College{}
	if ok, err := cc.Cache.Get(ctx, collegesKey, &colleges); err != nil {
		cc.Logger.Printf("cache get %s: %v", collegesKey, err)
	} else if ok {
		return c.JSON(colleges)
	}

	if err := cc.DB.WithContext(ctx).Order("name ASC").Find(&colleges).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch colleges")
	}

	if err := cc.Cache.Set(ctx, collegesKey, colleges, cc.Cfg.CacheTTL); err != nil {
		cc.Logger.Printf("cache set %s: %v", collegesKey, err)
	}
	return c.JSON(colleges)
}
