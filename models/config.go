package models

import "time"

type EnvConfig struct {
	Port int

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	ExtractorPath string

	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	StatsUser     string
	StatsPassword string

	LogLevel string
}
