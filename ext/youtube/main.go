package youtube

import (
	"context"
	"fmt"
	"regexp"

	"kingsaver/models"
	"kingsaver/ytdlp"
)

var Platform = &models.Platform{
	Name:       "YouTube",
	CodeName:   "youtube",
	URLPattern: regexp.MustCompile(`(?i)youtube\.com|youtu\.be`),
	Hosts: []string{
		"youtube.com",
		"youtu.be",
		"m.youtube.com",
	},
	CookiesEnv: "YOUTUBE_COOKIES",
}

// assigned in init to avoid an initialization cycle: fetch refers to
// Platform through OptionsForPlatform
func init() {
	Platform.Fetch = fetch
}

func fetch(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	info, err := ytdlp.Default().GetMediaInfo(
		ctx,
		contentURL,
		ytdlp.OptionsForPlatform(Platform),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	// offer only pre-merged mp4 variants; split audio/video formats
	// need merging this proxy does not do
	var merged []*models.MediaFormat
	for _, format := range info.Formats {
		if format.Ext == "mp4" && format.HasVideo && format.HasAudio {
			merged = append(merged, format)
		}
	}
	info.Formats = merged
	info.SortFormats()
	return info, nil
}
