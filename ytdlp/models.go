package ytdlp

// payload covers the stable subset of the extractor's JSON document.
// Loose fields (playlist entries, thumbnail variants) are probed with
// gjson in the normalizer instead.
type payload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Timestamp   int64   `json:"timestamp"`
	Uploader    string  `json:"uploader"`
	UploaderID  string  `json:"uploader_id"`
	Width       int64   `json:"width"`
	Height      int64   `json:"height"`
	URL         string  `json:"url"`

	ViewCount    *int64 `json:"view_count"`
	LikeCount    *int64 `json:"like_count"`
	RepostCount  *int64 `json:"repost_count"`
	CommentCount *int64 `json:"comment_count"`

	Formats []payloadFormat `json:"formats"`
}

type payloadFormat struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Protocol string `json:"protocol"`
	Width    int64  `json:"width"`
	Height   int64  `json:"height"`
	VCodec   string `json:"vcodec"`
	ACodec   string `json:"acodec"`
	URL      string `json:"url"`
}
