package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/labourlink/internal/pricing"
)

func Calculate(c *fiber.Ctx) error {
	var in pricing.Input
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    pricing.Calculate(in),
	})
}
