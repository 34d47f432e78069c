// Package testutil provides an in-memory record store and fixtures for tests.
package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/labourlink/internal/db"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

// NewDB opens a migrated SQLite database that lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

type UserOpt func(*models.User)

func WithRating(rating float64, reviews int) UserOpt {
	return func(u *models.User) {
		u.Rating = rating
		u.TotalReviews = reviews
	}
}

func WithWages(hour, day float64) UserOpt {
	return func(u *models.User) {
		u.WagePerHour = hour
		u.WagePerDay = day
	}
}

func WithCity(city string) UserOpt {
	return func(u *models.User) { u.Address.City = city }
}

// WithPassword stores hash as the password; pass a bcrypt hash when the test logs in.
func WithPassword(hash string) UserOpt {
	return func(u *models.User) { u.Password = hash }
}

func WithProfileImage(path string) UserOpt {
	return func(u *models.User) { u.ProfileImage = path }
}

// CreateLabour inserts an active labour account.
func CreateLabour(t testing.TB, gdb *gorm.DB, name, profession string, opts ...UserOpt) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    uniqueEmail(name),
		Password: "x",
		Phone:    "+91-9000000000",
		Age:      30,
		UserType: models.RoleLabour,
		LabourProfile: models.LabourProfile{
			Profession:  profession,
			Experience:  "5 years",
			WagePerHour: 20,
			WagePerDay:  150,
		},
		IsActive: true,
	}
	for _, o := range opts {
		o(&u)
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

// CreateCustomer inserts an active customer account.
func CreateCustomer(t testing.TB, gdb *gorm.DB, name string, opts ...UserOpt) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    uniqueEmail(name),
		Password: "x",
		Phone:    "+1-555-0100",
		Age:      40,
		UserType: models.RoleCustomer,
		IsActive: true,
	}
	for _, o := range opts {
		o(&u)
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

// Deactivate flips is_active off. Create cannot do it because the column defaults to true.
func Deactivate(t testing.TB, gdb *gorm.DB, id uuid.UUID) {
	t.Helper()
	require.NoError(t, gdb.Model(&models.User{}).Where("id = ?", id).Update("is_active", false).Error)
}

func CreateWork(t testing.TB, gdb *gorm.DB, labourID uuid.UUID, title string, completed time.Time) models.Work {
	t.Helper()
	w := models.Work{LabourID: labourID, Title: title, CompletedDate: completed}
	require.NoError(t, gdb.Create(&w).Error)
	return w
}

func uniqueEmail(name string) string {
	return uuid.NewString()[:8] + "." + strings.ToLower(sanitize(name)) + "@example.com"
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	return string(out)
}
