package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/search"
	"github.com/Windi-Fikriyansyah/labourlink/internal/testutil"
	"github.com/Windi-Fikriyansyah/labourlink/internal/utils"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	assert.Len(t, d.Customers, 3)
	assert.Len(t, d.Labours, 5)
	assert.Len(t, d.Works, 3)
	assert.Len(t, d.Orders, 3)

	rajesh := d.Labours[0]
	assert.Equal(t, "Plumber", rajesh.Profession)
	assert.Equal(t, 72.8777, rajesh.Location.Longitude)
	assert.Equal(t, "400001", rajesh.Address.ZipCode)
}

func TestRun(t *testing.T) {
	gdb := testutil.NewDB(t)
	d, err := Load()
	require.NoError(t, err)

	sum, err := Run(context.Background(), gdb, d, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Customers: 3, Labours: 5, Works: 3, Orders: 3}, sum)

	var john models.User
	require.NoError(t, gdb.Where("email = ?", "john.smith@example.com").First(&john).Error)
	assert.Equal(t, models.RoleCustomer, john.UserType)
	assert.True(t, utils.CheckPassword(john.Password, "password123"))
	assert.Equal(t, 40.7128, john.Location.Latitude)

	labours, err := search.Find(gdb, search.ParseParams("", "all", "", "", "rating"))
	require.NoError(t, err)
	require.Len(t, labours, 5)
	assert.Equal(t, "Amit Sharma", labours[0].Name)

	var order models.Order
	require.NoError(t, gdb.Preload("Customer").Preload("Labour").
		Where("service = ?", "Bathroom Plumbing Repair").First(&order).Error)
	assert.Equal(t, "John Smith", order.Customer.Name)
	assert.Equal(t, "Rajesh Kumar", order.Labour.Name)
	assert.Equal(t, models.OrderCompleted, order.Status)
	require.NotNil(t, order.CustomerRating)
	assert.Equal(t, 5, *order.CustomerRating)
	require.Len(t, order.Images, 1)
	assert.Equal(t, "Completed bathroom repair", order.Images[0].Caption)
	assert.Equal(t, "2800", order.Amount.String())
}

func TestRunReplacesExistingData(t *testing.T) {
	gdb := testutil.NewDB(t)
	testutil.CreateCustomer(t, gdb, "Stale")

	d, err := Load()
	require.NoError(t, err)
	_, err = Run(context.Background(), gdb, d, zap.NewNop())
	require.NoError(t, err)
	_, err = Run(context.Background(), gdb, d, zap.NewNop())
	require.NoError(t, err)

	var users int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 8, users)
}

func TestRunRejectsUnknownReference(t *testing.T) {
	gdb := testutil.NewDB(t)
	d := &Data{Works: []Work{{Labour: "nobody@example.com", Title: "Ghost job", CompletedDate: "2023-10-01"}}}

	_, err := Run(context.Background(), gdb, d, zap.NewNop())
	assert.ErrorContains(t, err, "unknown labour")
}
