package controllers

import (
	"errors"
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/middleware"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SchedulesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewSchedulesController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *SchedulesController {
	return &SchedulesController{DB: db, Cfg: cfg, Logger: logger}
}

type EventInput struct {
	Title     string `json:"title" validate:"notblank,max=120"`
	DayOfWeek int    `json:"day_of_week" validate:"min=1,max=7"`
	StartTime string `json:"start_time" validate:"clock"`
	EndTime   string `json:"end_time" validate:"clock"`
	Location  string `json:"location" validate:"omitempty,max=120"`
	Color     string `json:"color" validate:"omitempty,max=32"`
}

type CreateScheduleInput struct {
	Title        string       `json:"title" validate:"omitempty,max=120"`
	Term         string       `json:"term" validate:"notblank,max=60"`
	Events       []EventInput `json:"events" validate:"required,min=1,max=60,dive"`
	CollegeSlug  string       `json:"collegeSlug" validate:"notblank,max=64"`
	Major        string       `json:"major" validate:"notblank,max=120"`
	Level        string       `json:"level" validate:"oneof=freshman sophomore junior senior"`
	AuthorHandle string       `json:"authorHandle" validate:"omitempty,notblank,max=40"`
}

type ReactionInput struct {
	Kind string `json:"kind"`
}

// ListSchedules godoc
// @Summary List published schedules
// @Tags schedules
// @Param college query string false "College slug (alias: school)"
// @Param major query string false "Major"
// @Param level query string false "Level"
// @Param sort query string false "new or trending"
// @Router /schedules [get]
func (sc *SchedulesController) ListSchedules(c *fiber.Ctx) error {
	college := c.Query("college")
	if college == "" {
		college = c.Query("school")
	}
	filter := scheduleFilter{
		College: college,
		Major:   c.Query("major"),
		Level:   c.Query("level"),
	}

	items := []models.Schedule{}
	if err := sc.DB.Scopes(liveSchedules, filter.Scope, sortSchedules(c.Query("sort", "new"))).
		Find(&items).Error; err != nil {
		sc.Logger.Printf("list schedules: %v", err)
		return utils.InternalServerError(c, "Failed to fetch schedules")
	}

	return c.JSON(fiber.Map{"items": items})
}

func (sc *SchedulesController) GetSchedule(c *fiber.Ctx) error {
	var schedule models.Schedule
	if err := sc.DB.First(&schedule, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(schedule)
}

// CreateSchedule godoc
// @Summary Publish a schedule to the feed
// @Description A valid bearer token makes the caller the author; otherwise the post is anonymous.
// @Tags schedules
// @Accept json
// @Produce json
// @Param input body CreateScheduleInput true "Schedule"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /schedules [post]
func (sc *SchedulesController) CreateSchedule(c *fiber.Ctx) error {
	var input CreateScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	schedule := models.Schedule{
		Title:        strings.TrimSpace(input.Title),
		Term:         strings.TrimSpace(input.Term),
		CollegeSlug:  strings.TrimSpace(input.CollegeSlug),
		Major:        strings.TrimSpace(input.Major),
		Level:        input.Level,
		AuthorHandle: models.AnonymousHandle,
	}
	if input.AuthorHandle != "" {
		schedule.AuthorHandle = strings.TrimSpace(input.AuthorHandle)
	}
	for _, e := range input.Events {
		schedule.Events = append(schedule.Events, models.Event{
			Title:     strings.TrimSpace(e.Title),
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Location:  e.Location,
			Color:     e.Color,
		})
	}

	if claims := middleware.Claims(c); claims != nil {
		var author models.User
		if err := sc.DB.First(&author, "id = ?", claims.UserID).Error; err == nil {
			schedule.UserID = &author.ID
			schedule.AuthorHandle = author.Handle
		}
	}

	if err := sc.DB.Create(&schedule).Error; err != nil {
		sc.Logger.Printf("create schedule: %v", err)
		return utils.InternalServerError(c, "Could not create schedule")
	}

	sc.Logger.Printf("schedule published: %s by %s (%s/%s/%s)",
		schedule.ID, schedule.AuthorHandle, schedule.CollegeSlug, schedule.Major, schedule.Level)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":       true,
		"schedule": schedule,
	})
}

// React godoc
// @Summary Up- or down-vote a schedule
// @Tags schedules
// @Accept json
// @Param id path string true "Schedule ID"
// @Param input body ReactionInput true "kind: up or down"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedules/{id}/react [post]
func (sc *SchedulesController) React(c *fiber.Ctx) error {
	var input ReactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var column string
	switch input.Kind {
	case "up":
		column = "reactions_up"
	case "down":
		column = "reactions_down"
	default:
		return utils.ValidationError(c, map[string]string{"kind": "must be one of: up down"})
	}

	id := c.Params("id")
	res := sc.DB.Model(&models.Schedule{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		sc.Logger.Printf("react %s: %v", id, res.Error)
		return utils.InternalServerError(c, "Could not update reactions")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "not found")
	}

	var schedule models.Schedule
	if err := sc.DB.Select("id", "reactions_up", "reactions_down").
		First(&schedule, "id = ?", id).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"ok":        true,
		"reactions": schedule.Reactions,
	})
}

// DeleteSchedule soft-deletes a schedule (admin only).
func (sc *SchedulesController) DeleteSchedule(c *fiber.Ctx) error {
	res := sc.DB.Delete(&models.Schedule{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return utils.InternalServerError(c, "Could not delete schedule")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}
