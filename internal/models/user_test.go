package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/testutil"
)

func validLabour() models.User {
	return models.User{
		Name:     "Rajesh Kumar",
		Email:    "rajesh@example.com",
		Password: "hash",
		UserType: models.RoleLabour,
		LabourProfile: models.LabourProfile{
			Profession:  "Plumber",
			Experience:  "8 years",
			WagePerHour: 25,
			WagePerDay:  180,
		},
	}
}

func validCustomer() models.User {
	return models.User{
		Name:     "John Smith",
		Email:    "john@example.com",
		Password: "hash",
		UserType: models.RoleCustomer,
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *models.User)
		base   func() models.User
		want   error
	}{
		{"labour ok", func(u *models.User) {}, validLabour, nil},
		{"labour zero wages ok", func(u *models.User) { u.WagePerHour, u.WagePerDay = 0, 0 }, validLabour, nil},
		{"customer ok", func(u *models.User) {}, validCustomer, nil},
		{"customer with profession", func(u *models.User) { u.Profession = "Plumber" }, validCustomer, models.ErrCustomerLabourFields},
		{"customer with wage", func(u *models.User) { u.WagePerDay = 100 }, validCustomer, models.ErrCustomerLabourFields},
		{"labour without experience", func(u *models.User) { u.Experience = "  " }, validLabour, models.ErrLabourFieldsRequired},
		{"labour without profession", func(u *models.User) { u.Profession = "" }, validLabour, models.ErrLabourFieldsRequired},
		{"labour negative hourly wage", func(u *models.User) { u.WagePerHour = -1 }, validLabour, models.ErrLabourFieldsRequired},
		{"labour negative daily wage", func(u *models.User) { u.WagePerDay = -0.5 }, validLabour, models.ErrLabourFieldsRequired},
		{"unknown role", func(u *models.User) { u.UserType = "admin" }, validCustomer, models.ErrInvalidRole},
		{"empty role", func(u *models.User) { u.UserType = "" }, validCustomer, models.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.base()
			tt.mutate(&u)
			if tt.want == nil {
				assert.NoError(t, u.Validate())
				return
			}
			assert.ErrorIs(t, u.Validate(), tt.want)
		})
	}
}

func TestAsLabour(t *testing.T) {
	l := validLabour()
	p, ok := l.AsLabour()
	require.True(t, ok)
	assert.Equal(t, "Plumber", p.Profession)

	c := validCustomer()
	_, ok = c.AsLabour()
	assert.False(t, ok)
}

func TestCreateRejectsInvalidUser(t *testing.T) {
	gdb := testutil.NewDB(t)

	customer := validCustomer()
	customer.Profession = "Plumber"
	assert.ErrorIs(t, gdb.Create(&customer).Error, models.ErrCustomerLabourFields)

	labour := validLabour()
	labour.Experience = ""
	assert.ErrorIs(t, gdb.Create(&labour).Error, models.ErrLabourFieldsRequired)

	admin := validCustomer()
	admin.Email = "admin@example.com"
	admin.UserType = "admin"
	assert.ErrorIs(t, gdb.Create(&admin).Error, models.ErrInvalidRole)

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	ok := validLabour()
	require.NoError(t, gdb.Create(&ok).Error)
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfilePath(t *testing.T) {
	assert.Equal(t, "/profile/customer", models.ProfilePathFor(models.RoleCustomer))
	assert.Equal(t, "/profile/labour", models.ProfilePathFor(models.RoleLabour))
}
