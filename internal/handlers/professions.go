package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/search"
)

type ProfessionHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewProfessionHandler(db *gorm.DB, log *zap.Logger) *ProfessionHandler {
	return &ProfessionHandler{DB: db, Log: log}
}

func (h *ProfessionHandler) GetProfessions(c *fiber.Ctx) error {
	professions, err := search.Professions(h.DB.WithContext(c.UserContext()))
	if err != nil {
		h.Log.Error("list professions", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load professions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    professions,
	})
}
