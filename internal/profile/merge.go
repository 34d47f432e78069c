// Package profile applies a profile-edit submission to a stored account.
package profile

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/validation"
)

var ErrEmailTaken = errors.New("email already in use")

// Form is the edit-profile submission as it arrives from the browser.
type Form struct {
	Name    string `form:"name"`
	Age     string `form:"age"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Street  string `form:"street"`
	City    string `form:"city"`
	State   string `form:"state"`
	ZipCode string `form:"zipCode"`

	Profession  string `form:"profession"`
	Experience  string `form:"experience"`
	WagePerHour string `form:"wagePerHour"`
	WagePerDay  string `form:"wagePerDay"`
}

// Changes maps column names to their new values. Zero values are written too.
type Changes map[string]any

// Merge computes the update for stored from the submitted form.
//
// Labour fields are only taken when the stored account is a labour one; the role
// always comes from stored, never from the form. imagePath replaces the profile
// image when non-empty. Any field error rejects the whole update.
func Merge(stored models.User, f Form, imagePath string) (Changes, validation.FieldErrors) {
	errs := validation.FieldErrors{}
	ch := Changes{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs.Add("name", "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(f.Email))
	if email == "" {
		errs.Add("email", "email is required")
	} else if !validation.Var(email, "email") {
		errs.Add("email", "Invalid email format")
	}
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil || age < 0 {
		errs.Add("age", "age must be a whole number")
	}

	ch["name"] = name
	ch["age"] = age
	ch["email"] = email
	ch["phone"] = strings.TrimSpace(f.Phone)
	ch["address_street"] = strings.TrimSpace(f.Street)
	ch["address_city"] = strings.TrimSpace(f.City)
	ch["address_state"] = strings.TrimSpace(f.State)
	ch["address_zip_code"] = strings.TrimSpace(f.ZipCode)

	if imagePath != "" {
		ch["profile_image"] = imagePath
	}

	if stored.IsLabour() {
		profession := strings.TrimSpace(f.Profession)
		experience := strings.TrimSpace(f.Experience)
		if profession == "" {
			errs.Add("profession", "profession is required")
		}
		if experience == "" {
			errs.Add("experience", "experience is required")
		}
		hour, ok := ParseWage(f.WagePerHour)
		if !ok {
			errs.Add("wagePerHour", "wagePerHour must be a number")
		}
		day, ok := ParseWage(f.WagePerDay)
		if !ok {
			errs.Add("wagePerDay", "wagePerDay must be a number")
		}
		ch["profession"] = profession
		ch["experience"] = experience
		ch["wage_per_hour"] = hour
		ch["wage_per_day"] = day
	}

	if !errs.Empty() {
		return nil, errs
	}
	return ch, nil
}

// ParseWage accepts a finite, non-negative decimal number.
func ParseWage(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Apply persists ch on the account. Concurrent edits are last-write-wins.
func Apply(ctx context.Context, db *gorm.DB, userID uuid.UUID, ch Changes) error {
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any(ch)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint")
}
