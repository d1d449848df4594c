package api

import (
	"talent-scout/docs"
	"talent-scout/internal/api/handlers"
	"talent-scout/internal/apperr"
	"talent-scout/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	resumeHandler *handlers.ResumeHandler,
	askHandler *handlers.AskHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := apperr.HTTPStatus(err)
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
		BodyLimit: 50 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.CallerHeader,
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger spec in its init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// All API routes require an authenticated caller identity.
	v1 := app.Group("/api/v1", middleware.CallerIdentity(appLogger))

	resumes := v1.Group("/resumes")
	resumes.Post("/upload", resumeHandler.Upload)
	resumes.Get("", resumeHandler.List)
	resumes.Get("/:id", resumeHandler.Get)
	resumes.Get("/:id/download", resumeHandler.Download)

	v1.Post("/ask", askHandler.Ask)

	return app
}
