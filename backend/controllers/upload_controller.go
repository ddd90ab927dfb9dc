package controllers

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/storage"
	"ratemyschedule/backend/utils"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxUploadSize is the largest schedule image accepted.
const MaxUploadSize = 10 * 1024 * 1024

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

type UploadController struct {
	Cfg     *config.Config
	Storage storage.Storage
	Parser  *utils.ScheduleParser
	Logger  *log.Logger
}

func NewUploadController(cfg *config.Config, store storage.Storage, parser *utils.ScheduleParser, logger *log.Logger) *UploadController {
	return &UploadController{Cfg: cfg, Storage: store, Parser: parser, Logger: logger}
}

func uploadError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": message})
}

// Upload godoc
// @Summary Upload a schedule image and get parsed courses back
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param schedule formData file true "Schedule image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /upload [post]
func (uc *UploadController) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("schedule")
	if err != nil {
		return uploadError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > MaxUploadSize {
		return uploadError(c, fiber.StatusBadRequest, "File too large (max 10MB)")
	}

	f, err := fh.Open()
	if err != nil {
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return uploadError(c, fiber.StatusBadRequest, "Only image files are allowed")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !safeExt.MatchString(ext) {
		ext = mt.Extension()
	}
	name := fmt.Sprintf("schedule-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	location, err := uc.Storage.Save(c.UserContext(), name, mt.String(), f)
	if err != nil {
		uc.Logger.Printf("upload %s: %v", name, err)
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	parsed := uc.Parser.Parse()
	uc.Logger.Printf("parsed %d courses from %s (%s)", len(parsed.Events), name, location)

	return c.JSON(fiber.Map{
		"ok":       true,
		"saved_as": name,
		"parsed":   parsed,
	})
}

func (uc *UploadController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":        true,
		"service":   "upload",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
