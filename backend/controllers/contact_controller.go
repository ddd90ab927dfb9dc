package controllers

import (
	"fmt"
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer utils.Mailer // nil when SMTP is not configured
	Logger *log.Logger
}

func NewContactController(db *gorm.DB, cfg *config.Config, mailer utils.Mailer, logger *log.Logger) *ContactController {
	return &ContactController{DB: db, Cfg: cfg, Mailer: mailer, Logger: logger}
}

type ContactInput struct {
	Name    string `json:"name" validate:"notblank,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Topic   string `json:"topic" validate:"notblank,max=120"`
	Message string `json:"message" validate:"min=5,max=2000"`
}

// SendContact godoc
// @Summary Contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param input body ContactInput true "Message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /contact [post]
func (cc *ContactController) SendContact(c *fiber.Ctx) error {
	var input ContactInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Message = strings.TrimSpace(input.Message)
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Topic:   strings.TrimSpace(input.Topic),
		Message: input.Message,
	}

	if cc.Mailer == nil {
		if err := cc.DB.Create(&msg).Error; err != nil {
			return utils.InternalServerError(c, "Could not save message")
		}
		cc.Logger.Printf("[contact] (no smtp configured) %s <%s> %q: %s", msg.Name, msg.Email, msg.Topic, msg.Message)
		return c.JSON(fiber.Map{
			"ok":   true,
			"sent": false,
			"note": "smtp not configured; logged to server",
		})
	}

	err := cc.Mailer.Send(utils.Mail{
		ReplyTo: msg.Email,
		Subject: "[contact] " + msg.Topic,
		Body:    fmt.Sprintf("from: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
	})
	msg.Sent = err == nil
	if dbErr := cc.DB.Create(&msg).Error; dbErr != nil {
		cc.Logger.Printf("save contact message: %v", dbErr)
	}
	if err != nil {
		cc.Logger.Printf("contact mail error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": "failed to send",
		})
	}

	return c.JSON(fiber.Map{"ok": true, "sent": true})
}
