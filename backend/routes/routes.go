package routes

import (
	"log"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/controllers"
	"ratemyschedule/backend/middleware"
	"ratemyschedule/backend/storage"
	"ratemyschedule/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

// bodyLimit leaves room for multipart overhead on top of the upload cap.
const bodyLimit = controllers.MaxUploadSize + 1024*1024

// Deps are the services shared by the controllers.
type Deps struct {
	Logger  *log.Logger
	Cache   utils.Cache
	Storage storage.Storage
	Parser  *utils.ScheduleParser
	Mailer  utils.Mailer
}

// NewApp creates the Fiber app with the global middleware installed.
func NewApp(cfg *config.Config, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "RateMySchedule",
		BodyLimit:    bodyLimit,
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	app.Use(middleware.LoggingMiddleware(logger, !cfg.IsProduction()))

	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Deps) {
	if deps.Cache == nil {
		deps.Cache = utils.NopCache{}
	}

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)
	optionalAuth := middleware.OptionalAuth(cfg)
	devOnly := middleware.DevOnly(cfg)

	authController := controllers.NewAuthController(db, cfg, deps.Logger)
	schedulesController := controllers.NewSchedulesController(db, cfg, deps.Logger)
	commentsController := controllers.NewCommentsController(db, cfg, deps.Logger)
	feedController := controllers.NewFeedController(db, cfg, deps.Logger)
	uploadController := controllers.NewUploadController(cfg, deps.Storage, deps.Parser, deps.Logger)
	reportsController := controllers.NewReportsController(db, cfg, deps.Logger)
	analyticsController := controllers.NewAnalyticsController(db, cfg, deps.Cache, deps.Logger)
	collegesController := controllers.NewCollegesController(db, cfg, deps.Cache, deps.Logger)
	contactController := controllers.NewContactController(db, cfg, deps.Mailer, deps.Logger)

	// System
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "env": cfg.Env})
	})
	app.Get("/auth/dev-admin-token", devOnly, authController.DevAdminToken)

	api := app.Group("/api")

	// Users
	users := api.Group("/users")
	users.Post("/register", authController.Register)
	users.Post("/login", authController.Login)
	users.Get("/me", authMiddleware, authController.Me)
	users.Get("/", devOnly, authController.ListUsers)

	// Schedules
	schedules := api.Group("/schedules")
	schedules.Get("/", schedulesController.ListSchedules)
	schedules.Post("/", optionalAuth, schedulesController.CreateSchedule)
	schedules.Get("/:id", schedulesController.GetSchedule)
	schedules.Post("/:id/react", schedulesController.React)
	schedules.Delete("/:id", adminMiddleware, schedulesController.DeleteSchedule)
	schedules.Get("/:id/comments", commentsController.ListComments)
	schedules.Post("/:id/comments", authMiddleware, commentsController.AddComment)

	// Feed
	api.Get("/feed", feedController.GetFeed)
	api.Post("/feed", optionalAuth, schedulesController.CreateSchedule)

	// Upload
	api.Post("/upload", uploadController.Upload)
	api.Get("/upload/health", uploadController.Health)

	// Reports
	reports := api.Group("/reports")
	reports.Post("/", middleware.RateLimit(10, time.Minute), reportsController.CreateReport)
	reports.Get("/", adminMiddleware, reportsController.ListReports)
	reports.Post("/:id/resolve", adminMiddleware, reportsController.ResolveReport)

	// Admin
	admin := api.Group("/admin")
	admin.Get("/dev-metrics", devOnly, analyticsController.GetMetrics)
	admin.Get("/metrics", adminMiddleware, analyticsController.GetMetrics)

	api.Get("/metrics", analyticsController.GetPublicMetrics)
	api.Get("/colleges", collegesController.ListColleges)
	api.Post("/contact", middleware.RateLimit(6, time.Minute), contactController.SendContact)

	// Unknown API paths always answer JSON.
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	})
}
