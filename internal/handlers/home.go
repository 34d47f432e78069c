package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

const (
	featuredLimit    = 6
	featuredMinScore = 4.0
	recentJobsLimit  = 6
)

type HomeHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewHomeHandler(db *gorm.DB, log *zap.Logger) *HomeHandler {
	return &HomeHandler{DB: db, Log: log}
}

type homeStats struct {
	TotalLabours   int64 `json:"totalLabours"`
	TotalCustomers int64 `json:"totalCustomers"`
	CompletedJobs  int64 `json:"completedJobs"`
}

func (h *HomeHandler) Root(c *fiber.Ctx) error {
	return c.Redirect("/home")
}

// Home never fails: if any part cannot be loaded the page is served empty.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	featured, recent, stats, err := h.load(h.DB.WithContext(c.UserContext()))
	if err != nil {
		h.Log.Error("load home page", zap.Error(err))
		return render(c, fiber.Map{
			"featuredLabours": []models.User{},
			"recentJobs":      []models.Order{},
			"stats":           homeStats{},
			"user":            nil,
		})
	}

	return render(c, fiber.Map{
		"featuredLabours": featured,
		"recentJobs":      recent,
		"stats":           stats,
		"user":            viewer(c, h.DB, h.Log),
	})
}

func (h *HomeHandler) load(db *gorm.DB) ([]models.User, []models.Order, homeStats, error) {
	var stats homeStats

	featured := []models.User{}
	err := db.Where("user_type = ? AND is_active = ? AND rating >= ?", models.RoleLabour, true, featuredMinScore).
		Order("rating DESC").
		Order("total_reviews DESC").
		Limit(featuredLimit).
		Find(&featured).Error
	if err != nil {
		return nil, nil, stats, err
	}

	recent := []models.Order{}
	err = db.Where("status = ?", models.OrderPending).
		Preload("Customer", selectColumns("id", "name")).
		Preload("Labour", selectColumns("id", "name", "profession")).
		Order("created_at DESC").
		Limit(recentJobsLimit).
		Find(&recent).Error
	if err != nil {
		return nil, nil, stats, err
	}

	if err := db.Model(&models.User{}).
		Where("user_type = ? AND is_active = ?", models.RoleLabour, true).
		Count(&stats.TotalLabours).Error; err != nil {
		return nil, nil, stats, err
	}
	if err := db.Model(&models.User{}).
		Where("user_type = ? AND is_active = ?", models.RoleCustomer, true).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, nil, stats, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderCompleted).
		Count(&stats.CompletedJobs).Error; err != nil {
		return nil, nil, stats, err
	}

	return featured, recent, stats, nil
}

// selectColumns limits a preloaded relation to the columns a page shows.
func selectColumns(cols ...string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Select(cols)
	}
}
