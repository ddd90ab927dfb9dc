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

type CommentsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewCommentsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *CommentsController {
	return &CommentsController{DB: db, Cfg: cfg, Logger: logger}
}

// AddCommentRequest defines the request body for adding a comment
type AddCommentRequest struct {
	Body string `json:"body" validate:"notblank,max=2000" example:"who scheduled 8am calc on a friday"`
}

// ListComments godoc
// @Summary List comments on a schedule
// @Tags comments
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedules/{id}/comments [get]
func (cc *CommentsController) ListComments(c *fiber.Ctx) error {
	scheduleID := c.Params("id")
	if err := cc.DB.Select("id").First(&models.Schedule{}, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	items := []models.Comment{}
	if err := cc.DB.Where("schedule_id = ?", scheduleID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch comments")
	}

	return c.JSON(fiber.Map{"items": items})
}

// AddComment godoc
// @Summary Add comment to schedule
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param input body AddCommentRequest true "Comment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /schedules/{id}/comments [post]
func (cc *CommentsController) AddComment(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var input AddCommentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := cc.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	comment := models.Comment{
		ScheduleID:   c.Params("id"),
		UserID:       user.ID,
		AuthorHandle: user.Handle,
		Body:         strings.TrimSpace(input.Body),
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Schedule{}).
			Where("id = ?", comment.ScheduleID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&comment).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "not found")
	}
	if err != nil {
		cc.Logger.Printf("add comment to %s: %v", comment.ScheduleID, err)
		return utils.InternalServerError(c, "Could not create comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"comment": comment,
	})
}

// deleteComment soft-deletes a comment and keeps its schedule's counter in step.
func deleteComment(tx *gorm.DB, commentID string) error {
	var comment models.Comment
	if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&comment).Error; err != nil {
		return err
	}
	return tx.Model(&models.Schedule{}).
		Where("id = ? AND comments_count > 0", comment.ScheduleID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1)).Error
}
