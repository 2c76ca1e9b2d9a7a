package twitter

import (
	"context"
	"fmt"
	"regexp"

	"kingsaver/models"
	"kingsaver/ytdlp"
)

var Platform = &models.Platform{
	Name:       "Twitter",
	CodeName:   "twitter",
	URLPattern: regexp.MustCompile(`(?i)twitter\.com|x\.com`),
	Hosts: []string{
		"twitter.com",
		"x.com",
	},
	Fetch: fetch,
}

func fetch(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	info, err := ytdlp.Default().GetMediaInfo(ctx, contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	// prefer mp4 variants carrying a video track; keep the unfiltered
	// list when nothing qualifies
	var mp4Formats []*models.MediaFormat
	for _, format := range info.Formats {
		if format.Ext == "mp4" && format.HasVideo {
			mp4Formats = append(mp4Formats, format)
		}
	}
	if len(mp4Formats) > 0 {
		info.Formats = mp4Formats
	}
	info.SortFormats()
	return info, nil
}
