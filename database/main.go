package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kingsaver/config"
	"kingsaver/models"
)

var DB *gorm.DB

// Start connects to the analytics database. Tracking is optional: when
// DB_HOST is unset the server runs without it.
func Start() {
	if config.Env.DBHost == "" {
		return
	}
	connectionString := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
		config.Env.DBUser,
		config.Env.DBPassword,
		config.Env.DBHost,
		config.Env.DBPort,
		config.Env.DBName,
	)
	db, err := gorm.Open(mysql.Open(connectionString), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		zap.S().Fatalf("failed to connect to database: %v", err)
	}
	DB = db
	sqlDB, err := DB.DB()
	if err != nil {
		zap.S().Fatalf("failed to get database connection: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	if err := sqlDB.Ping(); err != nil {
		zap.S().Fatalf("failed to ping database: %v", err)
	}
	if err := DB.AutoMigrate(&models.Visit{}); err != nil {
		zap.S().Fatalf("failed to migrate database: %v", err)
	}
	zap.S().Info("visits table ready")
}

func Enabled() bool {
	return DB != nil
}
