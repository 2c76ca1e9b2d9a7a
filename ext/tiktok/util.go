package tiktok

import (
	"github.com/guregu/null/v6/zero"

	"kingsaver/enums"
	"kingsaver/models"
)

func normalize(data *videoData, originalURL string) *models.MediaInfo {
	info := &models.MediaInfo{
		ID:           data.ID,
		Title:        data.Title,
		Thumbnail:    data.Cover,
		Duration:     data.Duration,
		Timestamp:    data.CreateTime,
		Width:        data.Width,
		Height:       data.Height,
		PlayURL:      data.Play,
		HDPlayURL:    data.HDPlay,
		Type:         enums.MediaTypeVideo,
		ViewCount:    zero.IntFromPtr(data.PlayCount),
		LikeCount:    zero.IntFromPtr(data.DiggCount),
		CommentCount: zero.IntFromPtr(data.CommentCount),
		ShareCount:   zero.IntFromPtr(data.ShareCount),
		OriginalURL:  originalURL,
	}
	if info.Title == "" {
		info.Title = "Video"
	}
	if data.Author != nil {
		info.Uploader = data.Author.Nickname
		info.UploaderID = data.Author.UniqueID
	}
	// photo posts report a zero duration even when the API omits the
	// image list
	if len(data.Images) > 0 || data.Duration == 0 {
		info.Type = enums.MediaTypeSlideshow
		info.Images = data.Images
		if info.Images == nil {
			info.Images = []string{}
		}
	}
	return info
}
