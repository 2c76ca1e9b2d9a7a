package instagram

import (
	"context"
	"fmt"
	"regexp"

	"kingsaver/models"
	"kingsaver/ytdlp"
)

var Platform = &models.Platform{
	Name:       "Instagram",
	CodeName:   "instagram",
	URLPattern: regexp.MustCompile(`(?i)instagram\.com|instagr\.am`),
	Hosts: []string{
		"instagram.com",
		"instagr.am",
	},
	Fetch: fetch,
}

func fetch(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	info, err := ytdlp.Default().GetMediaInfo(ctx, contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	if info.Title == "" || info.Title == "Video" {
		info.Title = buildTitle(info)
	}
	return info, nil
}

func buildTitle(info *models.MediaInfo) string {
	if info.Description != "" {
		description := info.Description
		if len(description) > 50 {
			description = description[:50]
		}
		return description
	}
	uploader := info.Uploader
	if uploader == "" {
		uploader = "User"
	}
	return fmt.Sprintf("Instagram Reel - %s", uploader)
}
