package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"kingsaver/models"
	"kingsaver/util"
)

var apiURL = "https://www.tikwm.com/api/"

var (
	httpSession    = util.GetHTTPSession()
	videoIDPattern = regexp.MustCompile(`/video/(\d+)`)
)

var Platform = &models.Platform{
	Name:            "TikTok",
	CodeName:        "tiktok",
	URLPattern:      regexp.MustCompile(`(?i)tiktok\.com`),
	ShortURLPattern: regexp.MustCompile(`vt\.tiktok\.com|/t/`),
	Hosts: []string{
		"tiktok.com",
		"vt.tiktok.com",
		"vm.tiktok.com",
		"m.tiktok.com",
	},
	Fetch: fetch,
}

func fetch(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	if videoID := ExtractVideoID(contentURL); videoID == "" {
		zap.S().Warnf("could not extract video id from %s, sending full URL to API", contentURL)
	}
	data, err := getVideoAPI(ctx, contentURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get video data: %w", err)
	}
	return normalize(data, contentURL), nil
}

// ExtractVideoID pulls the numeric video id out of a canonical URL.
// An empty result is non-fatal, the full URL still works downstream.
func ExtractVideoID(contentURL string) string {
	match := videoIDPattern.FindStringSubmatch(contentURL)
	if match == nil {
		return ""
	}
	return match[1]
}

func getVideoAPI(ctx context.Context, contentURL string) (*videoData, error) {
	payload, err := json.Marshal(&apiRequest{URL: contentURL, HD: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		apiURL,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpSession.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if data.Code != 0 {
		message := data.Msg
		if message == "" {
			message = "failed to get video information"
		}
		return nil, fmt.Errorf("api error: %s", message)
	}
	if data.Data == nil {
		return nil, fmt.Errorf("api returned no data")
	}
	return data.Data, nil
}
