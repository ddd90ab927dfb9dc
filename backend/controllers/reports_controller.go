package controllers

import (
	"errors"
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewReportsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *ReportsController {
	return &ReportsController{DB: db, Cfg: cfg, Logger: logger}
}

type CreateReportInput struct {
	TargetType string `json:"targetType" validate:"oneof=schedule comment"`
	TargetID   string `json:"targetId" validate:"notblank"`
	Reason     string `json:"reason" validate:"min=3,max=500"`
}

type ResolveReportInput struct {
	Action string `json:"action" validate:"omitempty,oneof=close delete-target"`
}

// CreateReport godoc
// @Summary Report a schedule or comment
// @Tags reports
// @Accept json
// @Produce json
// @Param input body CreateReportInput true "Report"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /reports [post]
func (rc *ReportsController) CreateReport(c *fiber.Ctx) error {
	var input CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Reason = strings.TrimSpace(input.Reason)
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	report := models.Report{
		TargetType: input.TargetType,
		TargetID:   strings.TrimSpace(input.TargetID),
		Reason:     input.Reason,
		Status:     models.ReportOpen,
	}
	switch report.TargetType {
	case models.TargetSchedule:
		report.ScheduleID = report.TargetID
	case models.TargetComment:
		var comment models.Comment
		if err := rc.DB.Select("schedule_id").First(&comment, "id = ?", report.TargetID).Error; err == nil {
			report.ScheduleID = comment.ScheduleID
		}
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		rc.Logger.Printf("create report: %v", err)
		return utils.InternalServerError(c, "Could not create report")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":     true,
		"report": report,
	})
}

func (rc *ReportsController) ListReports(c *fiber.Ctx) error {
	items := []models.Report{}
	if err := rc.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch reports")
	}
	return c.JSON(fiber.Map{"items": items})
}

// ResolveReport godoc
// @Summary Resolve a report, optionally removing the reported content
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param input body ResolveReportInput false "action: close (default) or delete-target"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reports/{id}/resolve [post]
func (rc *ReportsController) ResolveReport(c *fiber.Ctx) error {
	var input ResolveReportInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if input.Action == "" {
		input.Action = models.ResolveClose
	}

	var report models.Report
	if err := rc.DB.First(&report, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if input.Action == models.ResolveDeleteTarget {
			if err := deleteTarget(tx, report); err != nil {
				return err
			}
		}
		report.Status = models.ReportResolved
		return tx.Save(&report).Error
	})
	if err != nil {
		rc.Logger.Printf("resolve report %s: %v", report.ID, err)
		return utils.InternalServerError(c, "Could not resolve report")
	}

	return c.JSON(fiber.Map{
		"ok":     true,
		"report": report,
	})
}

// deleteTarget removes the reported content. A target that is already gone is not an error.
func deleteTarget(tx *gorm.DB, report models.Report) error {
	var err error
	switch report.TargetType {
	case models.TargetSchedule:
		err = tx.Delete(&models.Schedule{}, "id = ?", report.TargetID).Error
	case models.TargetComment:
		err = deleteComment(tx, report.TargetID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
