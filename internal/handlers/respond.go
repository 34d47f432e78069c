package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

// render returns the view data of a page.
func render(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// validationFail keeps the form flow on 200 with per-field messages.
func validationFail(c *fiber.Ctx, errs validation.FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func findUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// viewer is the signed-in account for page chrome, or nil.
func viewer(c *fiber.Ctx, db *gorm.DB, log *zap.Logger) *models.User {
	s, signedIn := middleware.CurrentSession(c)
	if !signedIn {
		return nil
	}
	u, err := findUser(db.WithContext(c.UserContext()), s.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("load viewer", zap.String("user_id", s.UserID.String()), zap.Error(err))
		}
		return nil
	}
	return u
}

// sessionUser loads the account behind the current session. ok is false when the
// caller should be sent to the login page.
func sessionUser(c *fiber.Ctx, db *gorm.DB) (u *models.User, ok bool, err error) {
	s, signedIn := middleware.CurrentSession(c)
	if !signedIn {
		return nil, false, nil
	}
	u, err = findUser(db.WithContext(c.UserContext()), s.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
