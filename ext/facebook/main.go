package facebook

import (
	"context"
	"fmt"
	"regexp"

	"kingsaver/models"
	"kingsaver/ytdlp"
)

var Platform = &models.Platform{
	Name:       "Facebook",
	CodeName:   "facebook",
	URLPattern: regexp.MustCompile(`(?i)facebook\.com|fb\.watch|fb\.com`),
	Hosts: []string{
		"facebook.com",
		"fb.watch",
		"fb.com",
	},
	Fetch: fetch,
}

func fetch(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	info, err := ytdlp.Default().GetMediaInfo(ctx, contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	if info.Title == "" || info.Title == "Video" {
		uploader := info.Uploader
		if uploader == "" {
			uploader = "User"
		}
		info.Title = fmt.Sprintf("Facebook Video - %s", uploader)
	}
	return info, nil
}
