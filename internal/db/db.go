package db

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/labourlink/internal/logger"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

// Connect opens the Postgres record store.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.NewGormLogger(log, gormlogger.Warn),
		TranslateError: true,
	})
}

// Migrate creates or updates the users, orders and works tables.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&models.User{}, &models.Order{}, &models.Work{})
}
