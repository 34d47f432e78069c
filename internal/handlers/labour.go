package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/profile"
	"github.com/Windi-Fikriyansyah/labourlink/internal/search"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

const (
	detailWorksLimit   = 6
	detailReviewsLimit = 10
)

type LabourHandler struct {
	DB  *gorm.DB
	Log *zap.Logger

	now func() time.Time
}

func NewLabourHandler(db *gorm.DB, log *zap.Logger) *LabourHandler {
	return &LabourHandler{DB: db, Log: log, now: time.Now}
}

// FindLabour echoes the raw parameters back so the form keeps what was typed.
func (h *LabourHandler) FindLabour(c *fiber.Ctx) error {
	raw := struct {
		Search     string `query:"search"`
		Profession string `query:"profession"`
		MinRating  string `query:"minRating"`
		MaxPrice   string `query:"maxPrice"`
		SortBy     string `query:"sortBy"`
	}{}
	if err := c.QueryParser(&raw); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid query")
	}

	db := h.DB.WithContext(c.UserContext())
	p := search.ParseParams(raw.Search, raw.Profession, raw.MinRating, raw.MaxPrice, raw.SortBy)
	labours, err := search.Find(db, p)
	if err != nil {
		return err
	}
	professions, err := search.Professions(db)
	if err != nil {
		return err
	}

	sortBy := raw.SortBy
	if sortBy == "" {
		sortBy = string(search.SortRating)
	}
	return render(c, fiber.Map{
		"labours":     labours,
		"professions": professions,
		"searchParams": fiber.Map{
			"search":     raw.Search,
			"profession": raw.Profession,
			"minRating":  raw.MinRating,
			"maxPrice":   raw.MaxPrice,
			"sortBy":     sortBy,
		},
		"user": viewer(c, h.DB, h.Log),
	})
}

func (h *LabourHandler) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	db := h.DB.WithContext(c.UserContext())
	labour, err := findUser(db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	if !labour.IsLabour() {
		return notFound(c)
	}

	works := []models.Work{}
	if err := db.Where("labour_id = ?", id).
		Order("completed_date DESC").
		Limit(detailWorksLimit).
		Find(&works).Error; err != nil {
		return err
	}

	reviews := []models.Order{}
	if err := db.Where("labour_id = ? AND customer_rating IS NOT NULL", id).
		Preload("Customer", selectColumns("id", "name", "profile_image")).
		Order("completed_date DESC").
		Limit(detailReviewsLimit).
		Find(&reviews).Error; err != nil {
		return err
	}

	return render(c, fiber.Map{
		"labour":  labour,
		"works":   works,
		"reviews": reviews,
		"user":    viewer(c, h.DB, h.Log),
	})
}

type AddWorkReq struct {
	Title         string `json:"title" form:"title" validate:"required"`
	Description   string `json:"description" form:"description"`
	ClientName    string `json:"clientName" form:"clientName"`
	CompletedDate string `json:"completedDate" form:"completedDate"`
}

// parseCompletedDate accepts a date input value or an RFC 3339 timestamp; blank means now.
func parseCompletedDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *LabourHandler) AddWork(c *fiber.Ctx) error {
	s, _ := middleware.CurrentSession(c)

	var req AddWorkReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.Title = strings.TrimSpace(req.Title)

	errs := validation.FieldErrors{}
	errs.Merge(validation.Struct(&req))
	completed, ok := parseCompletedDate(req.CompletedDate, h.now())
	if !ok {
		errs.Add("completedDate", "completedDate must be a date (YYYY-MM-DD)")
	}
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	w := models.Work{
		LabourID:      s.UserID,
		Title:         req.Title,
		Description:   strings.TrimSpace(req.Description),
		ClientName:    strings.TrimSpace(req.ClientName),
		CompletedDate: completed,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&w).Error; err != nil {
		return err
	}

	h.Log.Info("work added", zap.String("user_id", s.UserID.String()), zap.String("work_id", w.ID.String()))
	return c.Redirect(models.ProfilePathFor(models.RoleLabour))
}

type UpdateWageReq struct {
	WagePerHour string `json:"wagePerHour" form:"wagePerHour"`
	WagePerDay  string `json:"wagePerDay" form:"wagePerDay"`
}

func (h *LabourHandler) UpdateWage(c *fiber.Ctx) error {
	s, _ := middleware.CurrentSession(c)

	var req UpdateWageReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	errs := validation.FieldErrors{}
	hour, ok := profile.ParseWage(req.WagePerHour)
	if !ok {
		errs.Add("wagePerHour", "wagePerHour must be a number")
	}
	day, ok := profile.ParseWage(req.WagePerDay)
	if !ok {
		errs.Add("wagePerDay", "wagePerDay must be a number")
	}
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	err := h.DB.WithContext(c.UserContext()).
		Model(&models.User{}).
		Where("id = ? AND user_type = ?", s.UserID, models.RoleLabour).
		Updates(map[string]any{"wage_per_hour": hour, "wage_per_day": day}).Error
	if err != nil {
		return err
	}
	return c.Redirect(models.ProfilePathFor(models.RoleLabour))
}
