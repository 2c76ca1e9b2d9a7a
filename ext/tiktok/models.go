package tiktok

type apiRequest struct {
	URL string `json:"url"`
	HD  int    `json:"hd"`
}

type apiResponse struct {
	Code int        `json:"code"`
	Msg  string     `json:"msg"`
	Data *videoData `json:"data"`
}

type videoData struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Cover      string   `json:"cover"`
	Duration   int64    `json:"duration"`
	CreateTime int64    `json:"create_time"`
	Play       string   `json:"play"`
	HDPlay     string   `json:"hdplay"`
	Width      int64    `json:"width"`
	Height     int64    `json:"height"`
	Images     []string `json:"images"`

	Author *author `json:"author"`

	PlayCount    *int64 `json:"play_count"`
	DiggCount    *int64 `json:"digg_count"`
	CommentCount *int64 `json:"comment_count"`
	ShareCount   *int64 `json:"share_count"`

	MusicInfo *musicInfo `json:"music_info"`
}

type author struct {
	ID       string `json:"id"`
	UniqueID string `json:"unique_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type musicInfo struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Duration int64  `json:"duration"`
	Play     string `json:"play"`
}
