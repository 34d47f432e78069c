package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/metrics"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/profile"
	"github.com/Windi-Fikriyansyah/labourlink/internal/upload"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

type ProfileHandler struct {
	DB      *gorm.DB
	Uploads *upload.Store
	Log     *zap.Logger
}

func NewProfileHandler(db *gorm.DB, uploads *upload.Store, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{DB: db, Uploads: uploads, Log: log}
}

func (h *ProfileHandler) Customer(c *fiber.Ctx) error {
	u, found, err := sessionUser(c, h.DB)
	if err != nil {
		return err
	}
	if !found {
		return c.Redirect("/login")
	}
	if u.UserType != models.RoleCustomer {
		return c.Redirect(u.ProfilePath())
	}

	orders := []models.Order{}
	err = h.DB.WithContext(c.UserContext()).
		Where("customer_id = ?", u.ID).
		Preload("Labour", selectColumns("id", "name", "profession", "profile_image")).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return err
	}

	return render(c, fiber.Map{
		"customer": u,
		"orders":   orders,
	})
}

func (h *ProfileHandler) Labour(c *fiber.Ctx) error {
	u, found, err := sessionUser(c, h.DB)
	if err != nil {
		return err
	}
	if !found {
		return c.Redirect("/login")
	}
	if u.UserType != models.RoleLabour {
		return c.Redirect(u.ProfilePath())
	}

	db := h.DB.WithContext(c.UserContext())

	works := []models.Work{}
	if err := db.Where("labour_id = ?", u.ID).
		Order("completed_date DESC").
		Find(&works).Error; err != nil {
		return err
	}

	orders := []models.Order{}
	if err := db.Where("labour_id = ?", u.ID).
		Preload("Customer", selectColumns("id", "name", "profile_image")).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return err
	}

	return render(c, fiber.Map{
		"labour": u,
		"works":  works,
		"orders": orders,
	})
}

func (h *ProfileHandler) Edit(c *fiber.Ctx) error {
	u, found, err := sessionUser(c, h.DB)
	if err != nil {
		return err
	}
	if !found {
		return c.Redirect("/login")
	}

	return render(c, fiber.Map{
		"user":     u,
		"userType": u.UserType,
	})
}

// Update applies the edit form. The optional profileImage upload is validated before
// anything is written, and removed again if the record update fails.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	stored, found, err := sessionUser(c, h.DB)
	if err != nil {
		return err
	}
	if !found {
		return c.Redirect("/login")
	}

	var form profile.Form
	if err := c.BodyParser(&form); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	var (
		fh     *multipart.FileHeader
		target *upload.Target
	)
	if f, err := c.FormFile("profileImage"); err == nil {
		fh = f
		t, err := h.Uploads.Prepare(fh)
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			metrics.ObserveUpload("rejected")
			return fail(c, fiber.StatusBadRequest,
				fmt.Sprintf("File too large. Maximum size is %dMB.", h.Uploads.MaxBytes>>20))
		case errors.Is(err, upload.ErrNotImage):
			metrics.ObserveUpload("rejected")
			return fail(c, fiber.StatusBadRequest, "Only image files (JPEG, PNG, GIF, WebP) are allowed")
		case err != nil:
			metrics.ObserveUpload("failed")
			return err
		}
		target = &t
	}

	imagePath := ""
	if target != nil {
		imagePath = target.URL
	}
	changes, errs := profile.Merge(*stored, form, imagePath)
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	if target != nil {
		if err := c.SaveFile(fh, target.Path); err != nil {
			metrics.ObserveUpload("failed")
			return err
		}
	}

	err = profile.Apply(c.UserContext(), h.DB, stored.ID, changes)
	if err != nil {
		if target != nil {
			if rmErr := h.Uploads.Remove(*target); rmErr != nil {
				h.Log.Warn("remove orphaned upload", zap.String("path", target.Path), zap.Error(rmErr))
			}
		}
		if errors.Is(err, profile.ErrEmailTaken) {
			return validationFail(c, validation.FieldErrors{"email": {msgEmailTaken}})
		}
		return err
	}

	if target != nil {
		metrics.ObserveUpload("stored")
		h.Log.Info("profile image stored", zap.String("user_id", stored.ID.String()), zap.String("url", target.URL))
	}
	return c.Redirect(stored.ProfilePath())
}
