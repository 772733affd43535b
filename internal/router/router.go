package router

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/omkarh25/som/internal/config"
	"github.com/omkarh25/som/internal/middleware"
	"github.com/omkarh25/som/internal/utils"
)

// NewApp builds the Fiber app with the middleware stack every route shares.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:request_id} ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSAllowOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
	}))

	return app
}

// errorHandler renders errors no handler turned into a response, such as
// unknown routes and recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		utils.GetLogger().WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("Unhandled error")
		return c.Status(code).JSON(fiber.Map{
			"detail":     message,
			"request_id": middleware.GetRequestID(c),
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": message,
	})
}
