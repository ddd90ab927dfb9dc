package controllers

import (
	"errors"
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/middleware"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
)

const minPasswordLength = 4

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Logger: logger}
}

type credentialsInput struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /users/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	handle := strings.TrimSpace(input.Handle)
	if handle == "" {
		return utils.BadRequest(c, "Handle is required")
	}
	if len(input.Password) < minPasswordLength {
		return utils.BadRequest(c, "Password must be at least 4 characters")
	}

	var existing models.User
	err := ac.DB.Where("handle_key = ?", models.HandleKey(handle)).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "User with this handle already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Handle:   handle,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if ac.Cfg.IsAdminHandle(handle) {
		user.Role = models.RoleAdmin
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "User with this handle already exists")
		}
		ac.Logger.Printf("register %s: %v", handle, err)
		return utils.InternalServerError(c, "Failed to create user")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	ac.Logger.Printf("new user registered: %s (%s)", user.Handle, user.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":    true,
		"user":  user,
		"token": token,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /users/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(input.Handle) == "" {
		return utils.BadRequest(c, "Handle is required")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "Password is required")
	}

	var user models.User
	if err := ac.DB.Where("handle_key = ?", models.HandleKey(input.Handle)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	ac.Logger.Printf("user logged in: %s (%s)", user.Handle, user.ID)

	return c.JSON(fiber.Map{
		"ok":    true,
		"user":  user,
		"token": token,
	})
}

// Me returns the caller's profile, stats and live schedules.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var user models.User
	if err := ac.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	schedules := []models.Schedule{}
	if err := ac.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&schedules).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch schedules")
	}

	return c.JSON(fiber.Map{
		"ok":        true,
		"user":      user,
		"stats":     models.NewUserStats(schedules),
		"schedules": schedules,
	})
}

// ListUsers is a development aid; the router keeps it out of production.
func (ac *AuthController) ListUsers(c *fiber.Ctx) error {
	users := []models.User{}
	if err := ac.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch users")
	}
	return c.JSON(fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// DevAdminToken issues an ADMIN token that is not tied to a stored user.
func (ac *AuthController) DevAdminToken(c *fiber.Ctx) error {
	token, err := utils.GenerateJWTToken("dev-admin", models.RoleAdmin, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}
	return c.JSON(fiber.Map{"token": token})
}
