package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

var errAlreadyReviewed = errors.New("order already reviewed")

type OrderHandler struct {
	DB  *gorm.DB
	Log *zap.Logger

	now func() time.Time
}

func NewOrderHandler(db *gorm.DB, log *zap.Logger) *OrderHandler {
	return &OrderHandler{DB: db, Log: log, now: time.Now}
}

type CreateOrderReq struct {
	LabourID      string `json:"labourId" form:"labourId" validate:"required,uuid"`
	Service       string `json:"service" form:"service" validate:"required"`
	Description   string `json:"description" form:"description"`
	Amount        string `json:"amount" form:"amount"`
	ScheduledDate string `json:"scheduledDate" form:"scheduledDate"`
	Street        string `json:"street" form:"street"`
	City          string `json:"city" form:"city"`
	State         string `json:"state" form:"state"`
	ZipCode       string `json:"zipCode" form:"zipCode"`
}

// Create books an active labour for the signed-in customer.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	s, _ := middleware.CurrentSession(c)

	var req CreateOrderReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.Service = strings.TrimSpace(req.Service)
	req.LabourID = strings.TrimSpace(req.LabourID)

	errs := validation.FieldErrors{}
	errs.Merge(validation.Struct(&req))

	amount := decimal.Zero
	if raw := strings.TrimSpace(req.Amount); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			errs.Add("amount", "amount must be a non-negative number")
		} else {
			amount = d.Round(2)
		}
	}

	var scheduled *time.Time
	if raw := strings.TrimSpace(req.ScheduledDate); raw != "" {
		t, ok := parseCompletedDate(raw, h.now())
		if !ok {
			errs.Add("scheduledDate", "scheduledDate must be a date (YYYY-MM-DD)")
		}
		scheduled = &t
	}
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	db := h.DB.WithContext(c.UserContext())

	labourID := uuid.MustParse(req.LabourID)
	labour, err := findUser(db, labourID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && (!labour.IsLabour() || !labour.IsActive)) {
		return fail(c, fiber.StatusNotFound, "Labour not found")
	}
	if err != nil {
		return err
	}

	order := models.Order{
		CustomerID:  s.UserID,
		LabourID:    labourID,
		Service:     req.Service,
		Description: strings.TrimSpace(req.Description),
		Status:      models.OrderPending,
		Amount:      amount,
		Address: models.Address{
			Street:  strings.TrimSpace(req.Street),
			City:    strings.TrimSpace(req.City),
			State:   strings.TrimSpace(req.State),
			ZipCode: strings.TrimSpace(req.ZipCode),
		},
		ScheduledDate: scheduled,
	}
	if err := db.Create(&order).Error; err != nil {
		return err
	}

	h.Log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", s.UserID.String()),
		zap.String("labour_id", labourID.String()),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created",
		"data":    order,
	})
}

type UpdateOrderStatusReq struct {
	Status string `json:"status" form:"status"`
}

// UpdateStatus lets either party move the order to any status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	s, _ := middleware.CurrentSession(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var req UpdateOrderStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	status := models.OrderStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	}

	db := h.DB.WithContext(c.UserContext())

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Order not found")
		}
		return err
	}
	if !order.IsParty(s.UserID) {
		return fail(c, fiber.StatusForbidden, "Access denied")
	}

	updates := map[string]any{"status": status}
	if status == models.OrderCompleted && order.CompletedDate == nil {
		now := h.now()
		updates["completed_date"] = now
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return err
	}

	if err := db.Preload("Customer", selectColumns("id", "name")).
		Preload("Labour", selectColumns("id", "name", "profession")).
		First(&order, "id = ?", order.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

type ReviewOrderReq struct {
	Rating string `json:"rating" form:"rating" validate:"required,numeric"`
	Review string `json:"review" form:"review"`
}

// Review stores the customer's rating on a completed order and folds it into the
// labour's running average.
func (h *OrderHandler) Review(c *fiber.Ctx) error {
	s, _ := middleware.CurrentSession(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var req ReviewOrderReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return validationFail(c, errs)
	}
	rating, ok := parseRating(req.Rating)
	if !ok {
		return validationFail(c, validation.FieldErrors{"rating": {"rating must be between 1 and 5"}})
	}

	var order models.Order
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if order.CustomerID != s.UserID {
			return fiber.NewError(fiber.StatusForbidden, "Access denied")
		}
		if order.Status != models.OrderCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Only completed orders can be reviewed")
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND customer_rating IS NULL", order.ID).
			Updates(map[string]any{
				"customer_rating": rating,
				"customer_review": strings.TrimSpace(req.Review),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyReviewed
		}

		return tx.Model(&models.User{}).
			Where("id = ?", order.LabourID).
			Updates(map[string]any{
				"rating":        gorm.Expr("(rating * total_reviews + ?) / (total_reviews + 1)", float64(rating)),
				"total_reviews": gorm.Expr("total_reviews + 1"),
			}).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, errAlreadyReviewed):
		return fail(c, fiber.StatusBadRequest, "Order already reviewed")
	case err != nil:
		return err
	}

	h.Log.Info("order reviewed", zap.String("order_id", order.ID.String()), zap.Int("rating", rating))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review saved",
	})
}

func parseRating(raw string) (int, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	n := int(d.IntPart())
	return n, n >= 1 && n <= 5
}
