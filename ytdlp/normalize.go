package ytdlp

import (
	"encoding/json"
	"fmt"

	"github.com/guregu/null/v6/zero"
	"github.com/tidwall/gjson"

	"kingsaver/enums"
	"kingsaver/models"
)

// Normalize maps a raw extractor document into the platform-agnostic
// MediaInfo shape. Pure function of its input: normalizing the same
// document twice yields identical results.
func Normalize(raw []byte, originalURL string) (*models.MediaInfo, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse extractor output: %w", err)
	}

	info := &models.MediaInfo{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		Duration:     int64(p.Duration),
		Timestamp:    p.Timestamp,
		Uploader:     p.Uploader,
		UploaderID:   p.UploaderID,
		Width:        p.Width,
		Height:       p.Height,
		PlayURL:      p.URL,
		Type:         enums.MediaTypeVideo,
		ViewCount:    zero.IntFromPtr(p.ViewCount),
		LikeCount:    zero.IntFromPtr(p.LikeCount),
		ShareCount:   zero.IntFromPtr(p.RepostCount),
		CommentCount: zero.IntFromPtr(p.CommentCount),
		OriginalURL:  originalURL,
	}

	// title fallback chain: title -> description -> placeholder
	if info.Title == "" {
		if info.Description != "" {
			info.Title = info.Description
		} else {
			info.Title = "Video"
		}
	}

	for _, f := range p.Formats {
		qualityLabel := "audio"
		if f.Height > 0 {
			qualityLabel = fmt.Sprintf("%dp", f.Height)
		}
		info.Formats = append(info.Formats, &models.MediaFormat{
			FormatID:     f.FormatID,
			QualityLabel: qualityLabel,
			Ext:          f.Ext,
			Protocol:     f.Protocol,
			Width:        f.Width,
			Height:       f.Height,
			HasVideo:     hasCodec(f.VCodec),
			HasAudio:     hasCodec(f.ACodec),
			URL:          f.URL,
		})
	}
	info.SortFormats()

	doc := gjson.ParseBytes(raw)

	// carousels arrive as playlist/entries structures
	if doc.Get("_type").String() == "playlist" {
		if entries := doc.Get("entries"); entries.IsArray() {
			info.Type = enums.MediaTypeSlideshow
			for _, e := range entries.Array() {
				if imageURL := bestEntryImage(e); imageURL != "" {
					info.Images = append(info.Images, imageURL)
				}
			}
		}
	}

	// some source shapes carry an explicit image list
	for _, img := range doc.Get("images").Array() {
		if imageURL := img.String(); imageURL != "" {
			info.Images = append(info.Images, imageURL)
		}
	}

	// a nonempty image list, or a zero duration, means the "video" is
	// really a photo post
	if info.Type != enums.MediaTypeSlideshow &&
		(len(info.Images) > 0 || info.Duration == 0) {
		info.Type = enums.MediaTypeSlideshow
		if info.Images == nil {
			info.Images = []string{}
		}
	}
	if info.Type == enums.MediaTypeSlideshow && info.Thumbnail == "" && len(info.Images) > 0 {
		info.Thumbnail = info.Images[0]
	}

	return info, nil
}

func hasCodec(codec string) bool {
	return codec != "" && codec != "none"
}

// bestEntryImage picks the widest thumbnail variant of one playlist
// entry, falling back through thumbnail and url fields.
func bestEntryImage(entry gjson.Result) string {
	var bestURL string
	var bestWidth int64 = -1
	for _, thumb := range entry.Get("thumbnails").Array() {
		width := thumb.Get("width").Int()
		if width > bestWidth {
			bestWidth = width
			bestURL = thumb.Get("url").String()
		}
	}
	if bestURL != "" {
		return bestURL
	}
	if thumbnail := entry.Get("thumbnail").String(); thumbnail != "" {
		return thumbnail
	}
	return entry.Get("url").String()
}
