package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"kingsaver/models"
)

var Env = GetDefaultConfig()

func Load() {
	if err := godotenv.Load(); err != nil {
		zap.S().Debug("no .env file found, using environment")
	}
	if value := os.Getenv("PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			Env.Port = port
		} else {
			zap.S().Fatal("PORT env is not a valid integer")
		}
	} else {
		zap.S().Warnf("PORT is not set, using default %d", Env.Port)
	}
	if value := os.Getenv("DB_HOST"); value != "" {
		Env.DBHost = value
		if value := os.Getenv("DB_PORT"); value != "" {
			if port, err := strconv.Atoi(value); err == nil {
				Env.DBPort = port
			} else {
				zap.S().Fatal("DB_PORT env is not a valid integer")
			}
		}
		if value := os.Getenv("DB_NAME"); value != "" {
			Env.DBName = value
		} else {
			zap.S().Fatal("DB_NAME env is not set")
		}
		if value := os.Getenv("DB_USER"); value != "" {
			Env.DBUser = value
		} else {
			zap.S().Fatal("DB_USER env is not set")
		}
		if value := os.Getenv("DB_PASSWORD"); value != "" {
			Env.DBPassword = value
		} else {
			zap.S().Fatal("DB_PASSWORD env is not set")
		}
	} else {
		zap.S().Warn("DB_HOST is not set, visit tracking is disabled")
	}
	if value := os.Getenv("YTDLP_PATH"); value != "" {
		Env.ExtractorPath = value
	} else {
		zap.S().Warnf("YTDLP_PATH is not set, using default %q", Env.ExtractorPath)
	}
	if value := os.Getenv("CACHE_TTL"); value != "" {
		if ttl, err := time.ParseDuration(value); err == nil {
			Env.CacheTTL = ttl
		} else {
			zap.S().Fatalf("CACHE_TTL env is not a valid duration: %v", err)
		}
	}
	if value := os.Getenv("STATS_USER"); value != "" {
		Env.StatsUser = value
	}
	if value := os.Getenv("STATS_PASSWORD"); value != "" {
		Env.StatsPassword = value
	} else {
		zap.S().Warn("STATS_PASSWORD is not set, using default credentials")
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
}

func GetDefaultConfig() *models.EnvConfig {
	return &models.EnvConfig{
		Port: 3000,

		DBPort: 3306,
		DBName: "kingsaver",
		DBUser: "kingsaver",

		ExtractorPath: "yt-dlp",

		CacheTTL:           5 * time.Minute,
		CacheSweepInterval: time.Minute,

		StatsUser:     "admin",
		StatsPassword: "admin",

		LogLevel: "info",
	}
}
