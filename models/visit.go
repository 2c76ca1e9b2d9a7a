package models

import (
	"time"

	"github.com/guregu/null/v6/zero"
)

// Visit is one tracked request, written fire-and-forget by the server
// middleware. Best-effort analytics, never load-bearing.
type Visit struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	Path      string      `gorm:"not null;index" json:"path"`
	Method    string      `gorm:"not null" json:"method"`
	IP        zero.String `json:"ip"`
	UserAgent zero.String `json:"user_agent"`
	Platform  string      `gorm:"default:Web;index" json:"platform"`
	CreatedAt time.Time   `json:"timestamp"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int64  `json:"count"`
}

type HourCount struct {
	Time  string `json:"time"`
	Count int64  `json:"count"`
}

type VisitStats struct {
	Total      int64           `json:"total"`
	ByPath     []PathCount     `json:"byPath"`
	Recent     []Visit         `json:"recent"`
	OverTime   []HourCount     `json:"overTime"`
	ByPlatform []PlatformCount `json:"byPlatform"`
}
