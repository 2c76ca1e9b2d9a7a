package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/guregu/null/v6/zero"

	"kingsaver/enums"
)

// hdHeight is the cutoff between the "HD" and "SD" buckets
// offered to clients.
const hdHeight = 720

// MediaInfo is the normalized result shape shared by every platform.
// Exactly one of Formats/PlayURL (video) or Images (slideshow) carries
// the playable payload.
type MediaInfo struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Duration    int64           `json:"duration"`
	Timestamp   int64           `json:"timestamp,omitempty"`
	Uploader    string          `json:"uploader,omitempty"`
	UploaderID  string          `json:"uploader_id,omitempty"`
	Width       int64           `json:"width,omitempty"`
	Height      int64           `json:"height,omitempty"`
	Type        enums.MediaType `json:"type"`

	// counters are optional, platforms expose different subsets
	ViewCount    zero.Int `json:"view_count,omitempty"`
	LikeCount    zero.Int `json:"like_count,omitempty"`
	CommentCount zero.Int `json:"comment_count,omitempty"`
	ShareCount   zero.Int `json:"share_count,omitempty"`

	PlayURL   string `json:"play,omitempty"`
	HDPlayURL string `json:"hdplay,omitempty"`

	Images  []string       `json:"images,omitempty"`
	Formats []*MediaFormat `json:"formats,omitempty"`

	OriginalURL string `json:"original_url"`
}

// MediaFormat is one concrete encoded variant of a media item.
type MediaFormat struct {
	FormatID     string `json:"format_id"`
	QualityLabel string `json:"quality_label,omitempty"`
	Ext          string `json:"ext,omitempty"`
	Protocol     string `json:"protocol,omitempty"`
	Width        int64  `json:"width,omitempty"`
	Height       int64  `json:"height,omitempty"`
	HasVideo     bool   `json:"has_video"`
	HasAudio     bool   `json:"has_audio"`
	URL          string `json:"url"`
}

// SortFormats orders formats by descending height so quality selection
// can scan front to back.
func (info *MediaInfo) SortFormats() {
	sort.SliceStable(info.Formats, func(i, j int) bool {
		return info.Formats[i].Height > info.Formats[j].Height
	})
}

// GetHDFormat returns the first format at or above 720p, or the highest
// available one. Returns nil only when there are no formats at all.
func (info *MediaInfo) GetHDFormat() *MediaFormat {
	if len(info.Formats) == 0 {
		return nil
	}
	info.SortFormats()
	for _, format := range info.Formats {
		if format.Height >= hdHeight {
			return format
		}
	}
	return info.Formats[0]
}

// GetSDFormat returns the first format below 720p, or the smallest
// available one. Returns nil only when there are no formats at all.
func (info *MediaInfo) GetSDFormat() *MediaFormat {
	if len(info.Formats) == 0 {
		return nil
	}
	info.SortFormats()
	for _, format := range info.Formats {
		if format.Height < hdHeight {
			return format
		}
	}
	return info.Formats[len(info.Formats)-1]
}

// BestPlayURL picks a single best-effort URL: HD play URL, then the
// plain play URL, then the best format.
func (info *MediaInfo) BestPlayURL() string {
	if info.HDPlayURL != "" {
		return info.HDPlayURL
	}
	if info.PlayURL != "" {
		return info.PlayURL
	}
	if format := info.GetHDFormat(); format != nil {
		return format.URL
	}
	return ""
}

func (info *MediaInfo) IsSlideshow() bool {
	return info.Type == enums.MediaTypeSlideshow
}

// GetFileName builds a download file name from the title, falling back
// to a random name when the title is unusable.
func (info *MediaInfo) GetFileName(extension string) string {
	title := strings.ReplaceAll(info.Title, "/", " ")
	title = strings.TrimSpace(title)
	if len(title) > 100 {
		title = title[:100]
	}
	if title == "" {
		name := strings.ReplaceAll(uuid.New().String(), "-", "")
		return fmt.Sprintf("%s.%s", name, extension)
	}
	return fmt.Sprintf("%s.%s", title, extension)
}
