package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/billyribeiro-ux/cognition-os/internal/config"
	logging "github.com/billyribeiro-ux/cognition-os/internal/logging"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.KVEntry{},
		&models.TrainingScore{},
		&models.DailyLog{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	scoresIndex := `CREATE INDEX IF NOT EXISTS idx_scores_user_created ON training_scores (user_id, created_at DESC);`
	if err := DB.Exec(scoresIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on training_scores", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
