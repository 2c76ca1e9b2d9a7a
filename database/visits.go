package database

import (
	"time"

	"go.uber.org/zap"

	"kingsaver/models"
)

// TrackVisit records one request asynchronously. Best effort: failures
// are logged and never surface to the request path.
func TrackVisit(visit *models.Visit) {
	if DB == nil {
		return
	}
	go func() {
		if err := DB.Create(visit).Error; err != nil {
			zap.S().Warnf("failed to track visit: %v", err)
		}
	}()
}

func GetVisitStats() (*models.VisitStats, error) {
	stats := &models.VisitStats{}

	err := DB.Model(&models.Visit{}).Count(&stats.Total).Error
	if err != nil {
		return nil, err
	}
	err = DB.Model(&models.Visit{}).
		Select("path, COUNT(*) as count").
		Group("path").
		Order("count DESC").
		Limit(10).
		Scan(&stats.ByPath).
		Error
	if err != nil {
		return nil, err
	}
	err = DB.Model(&models.Visit{}).
		Order("created_at DESC").
		Limit(20).
		Find(&stats.Recent).
		Error
	if err != nil {
		return nil, err
	}
	err = DB.Model(&models.Visit{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d %H:00:00') as time, COUNT(*) as count").
		Where("created_at > ?", time.Now().Add(-24*time.Hour)).
		Group("time").
		Order("time").
		Scan(&stats.OverTime).
		Error
	if err != nil {
		return nil, err
	}
	err = DB.Model(&models.Visit{}).
		Select("platform, COUNT(*) as count").
		Group("platform").
		Order("count DESC").
		Scan(&stats.ByPlatform).
		Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
