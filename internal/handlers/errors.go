package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the single error path of the app. Fiber errors keep their status and
// message; anything else is logged and reported as a generic 500. The underlying error
// text is only included in development.
func ErrorHandler(log *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return notFound(c)
			}
			return fail(c, fe.Code, fe.Message)
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		resp := fiber.Map{
			"success": false,
			"message": "Internal server error",
		}
		if development {
			resp["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

// NotFound is mounted after every route.
func NotFound(c *fiber.Ctx) error {
	return notFound(c)
}

func notFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "Page not found")
}
