package controllers

import (
	"math"
	"ratemyschedule/backend/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100

	// maxPage keeps (page-1)*limit from overflowing the offset.
	maxPage = math.MaxInt32
)

// pageParams reads page and limit, falling back to defaults on bad input.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	limit, err = strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	case limit < 1:
		limit = 1
	}
	return page, limit
}

// Paginate is a GORM scope applying offset and limit.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// scheduleFilter narrows a schedule query by tag.
type scheduleFilter struct {
	College string
	Major   string
	Level   string
	// FoldCollege makes the college match case-insensitive.
	FoldCollege bool
}

func (f scheduleFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.College != "" {
		if f.FoldCollege {
			db = db.Where("LOWER(college_slug) = ?", strings.ToLower(f.College))
		} else {
			db = db.Where("college_slug = ?", f.College)
		}
	}
	if f.Major != "" {
		db = db.Where("LOWER(major) = ?", strings.ToLower(f.Major))
	}
	if f.Level != "" {
		db = db.Where("level = ?", f.Level)
	}
	return db
}

// sortSchedules orders by score for trending/popular, otherwise newest first.
func sortSchedules(sort string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch strings.ToLower(sort) {
		case "trending", "popular":
			return db.Order("(reactions_up - reactions_down) DESC").Order("created_at DESC")
		default:
			return db.Order("created_at DESC")
		}
	}
}

// liveSchedules is the base query; soft-deleted rows are excluded by GORM.
func liveSchedules(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Schedule{})
}
