package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/metrics"
	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/profile"
	"github.com/Windi-Fikriyansyah/labourlink/internal/utils"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

const msgEmailTaken = "User with this email already exists"

type AuthHandler struct {
	DB       *gorm.DB
	Sessions *Sessions
	Log      *zap.Logger
}

func NewAuthHandler(db *gorm.DB, sessions *Sessions, log *zap.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Sessions: sessions, Log: log}
}

// LoginPage sends signed-in users to their own profile.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if s, ok := middleware.CurrentSession(c); ok {
		return c.Redirect(models.ProfilePathFor(s.Role))
	}

	preselect := models.RoleCustomer
	if c.Query("register") == string(models.RoleLabour) {
		preselect = models.RoleLabour
	}
	return render(c, fiber.Map{
		"preSelectUserType": preselect,
	})
}

type RegisterReq struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Phone    string `json:"phone" form:"phone" validate:"required"`
	Age      string `json:"age" form:"age" validate:"required"`
	UserType string `json:"userType" form:"userType" validate:"required,oneof=customer labour"`

	Profession  string `json:"profession" form:"profession" validate:"required_if=UserType labour"`
	Experience  string `json:"experience" form:"experience" validate:"required_if=UserType labour"`
	WagePerHour string `json:"wagePerHour" form:"wagePerHour" validate:"required_if=UserType labour"`
	WagePerDay  string `json:"wagePerDay" form:"wagePerDay" validate:"required_if=UserType labour"`
}

func (r *RegisterReq) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Age = strings.TrimSpace(r.Age)
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))
	r.Profession = strings.TrimSpace(r.Profession)
	r.Experience = strings.TrimSpace(r.Experience)
}

// user builds the account record. Labour fields are dropped for customers.
func (r *RegisterReq) user() (models.User, validation.FieldErrors) {
	errs := validation.FieldErrors{}
	u := models.User{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		UserType: models.Role(r.UserType),
		IsActive: true,
	}
	age, err := strconv.Atoi(r.Age)
	if err != nil || age < 0 {
		errs.Add("age", "age must be a whole number")
	}
	u.Age = age
	if u.UserType == models.RoleLabour {
		hour, ok := profile.ParseWage(r.WagePerHour)
		if !ok {
			errs.Add("wagePerHour", "wagePerHour must be a number")
		}
		day, ok := profile.ParseWage(r.WagePerDay)
		if !ok {
			errs.Add("wagePerDay", "wagePerDay must be a number")
		}
		u.LabourProfile = models.LabourProfile{
			Profession:  r.Profession,
			Experience:  r.Experience,
			WagePerHour: hour,
			WagePerDay:  day,
		}
	}
	return u, errs
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.normalize()

	errs := validation.FieldErrors{}
	errs.Merge(validation.Struct(&req))
	if !errs.Empty() {
		return validationFail(c, errs)
	}
	u, errs := req.user()
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	db := h.DB.WithContext(c.UserContext())

	var existing models.User
	if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		return emailTaken(c)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	u.Password = pw

	if err := db.Create(&u).Error; err != nil {
		// a concurrent registration got past the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return emailTaken(c)
		}
		return err
	}

	metrics.ObserveRegistration(string(u.UserType))
	h.Log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("user_type", string(u.UserType)))

	if err := h.Sessions.Start(c, &u); err != nil {
		return err
	}
	return c.Redirect(u.ProfilePath())
}

func emailTaken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": msgEmailTaken,
		"errors":  validation.FieldErrors{"email": {msgEmailTaken}},
	})
}

type LoginReq struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := validation.Struct(&req); errs != nil {
		return validationFail(c, errs)
	}

	var u models.User
	err := h.DB.WithContext(c.UserContext()).Where("email = ?", req.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusOK, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		return fail(c, fiber.StatusOK, "Invalid email or password")
	}
	if !u.IsActive {
		return fail(c, fiber.StatusOK, "Account is inactive")
	}

	if err := h.Sessions.Start(c, &u); err != nil {
		return err
	}
	h.Log.Info("login", zap.String("user_id", u.ID.String()), zap.String("user_type", string(u.UserType)))
	return c.Redirect(u.ProfilePath())
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Sessions.End(c)

	if c.Query("redirect") == string(models.RoleLabour) {
		return c.Redirect("/login?register=labour")
	}
	return c.Redirect("/")
}
