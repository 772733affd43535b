package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/middleware"
	"github.com/omkarh25/som/internal/utils"
)

// ErrorResponse writes err as a sanitized JSON body. notFound is the fixed
// message used when err wraps apperror.ErrNotFound. Anything that is not a
// lookup miss or a validation failure is a 500 whose cause only reaches
// the log.
func ErrorResponse(c *fiber.Ctx, err error, notFound string) error {
	if apperror.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": notFound,
		})
	}

	if v, ok := apperror.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Validation failed",
			"errors": v.Fields,
		})
	}

	requestID := middleware.GetRequestID(c)
	detail := "Internal server error"
	entry := utils.GetLogger().WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Method(),
		"path":       c.Path(),
	})

	var se *apperror.StoreError
	switch {
	case errors.As(err, &se):
		detail = "Failed to access records"
		entry = entry.WithField("op", se.Op)
	case errors.Is(err, apperror.ErrUnrepresentable):
		detail = "Failed to encode records"
	}
	entry.WithError(err).Error(detail)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail":     detail,
		"request_id": requestID,
	})
}
