package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hairsol/booking-engine/internal/config"
	"github.com/hairsol/booking-engine/internal/models"
)

// slotIndexSQL backs the one-booking-per-slot rule; cancelled rows free the slot.
const slotIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_slot
	ON appointments (service_provider_id, service_id, date, time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("database ready",
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Int("max_idle_conns", cfg.DBMaxIdleConns),
	)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ServiceProvider{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
		&models.AppointmentCheckout{},
		&models.AuditLog{},
		&models.OutboxEvent{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(slotIndexSQL).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}
	return nil
}
