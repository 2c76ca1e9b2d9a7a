package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"kingsaver/enums"
	"kingsaver/models"
	"kingsaver/util"
)

const maxSlideshowImages = 15

// platforms embed responsive-image JSON blobs with inconsistent field
// ordering, so both orders must be scanned to avoid missing candidates
var (
	widthFirstPattern = regexp.MustCompile(`"config_width"\s*:\s*(\d+)[^}]*?"src"\s*:\s*"([^"]+)"`)
	srcFirstPattern   = regexp.MustCompile(`"src"\s*:\s*"([^"]+)"[^}]*?"config_width"\s*:\s*(\d+)`)
	displayURLPattern = regexp.MustCompile(`"display_url"\s*:\s*"([^"]+)"`)

	metaPropertyFirst = regexp.MustCompile(`<meta[^>]*?property="og:([a-z:_]+)"[^>]*?content="([^"]*)"`)
	metaContentFirst  = regexp.MustCompile(`<meta[^>]*?content="([^"]*)"[^>]*?property="og:([a-z:_]+)"`)
)

var httpSession = util.GetHTTPSession()

type imageCandidate struct {
	url   string
	width int
}

// ScrapeFallback rescues posts the extractor reported as having no
// video: photo and slideshow posts, plus the occasional video whose
// Open Graph tags survive while extraction fails. Best-effort only;
// callers keep the original extractor error when nothing is found.
func ScrapeFallback(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
	body, err := fetchPage(ctx, contentURL)
	if err != nil {
		return nil, err
	}

	og := parseOpenGraph(body)
	if len(og.images) == 0 {
		return nil, util.ErrNoImageMetadata
	}

	if og.video != "" {
		// the post is actually a video the extractor missed
		return &models.MediaInfo{
			ID:          fmt.Sprintf("video_%d", time.Now().UnixMilli()),
			Title:       fallbackTitle(og.title, "Video"),
			Description: og.description,
			Thumbnail:   og.images[0],
			PlayURL:     og.video,
			Type:        enums.MediaTypeVideo,
			OriginalURL: contentURL,
		}, nil
	}

	images := collectImages(body, og.images)
	return &models.MediaInfo{
		ID:          fmt.Sprintf("image_%d", time.Now().UnixMilli()),
		Title:       fallbackTitle(og.title, "Photo"),
		Description: og.description,
		Thumbnail:   images[0],
		Images:      images,
		Type:        enums.MediaTypeSlideshow,
		OriginalURL: contentURL,
	}, nil
}

func fetchPage(ctx context.Context, contentURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", util.MobileUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := httpSession.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}
	return string(body), nil
}

type openGraph struct {
	title       string
	description string
	video       string
	images      []string
}

func parseOpenGraph(body string) openGraph {
	var og openGraph
	set := func(property, content string) {
		switch property {
		case "title":
			if og.title == "" {
				og.title = content
			}
		case "description":
			if og.description == "" {
				og.description = content
			}
		case "video":
			if og.video == "" {
				og.video = content
			}
		case "image":
			for _, existing := range og.images {
				if existing == content {
					return
				}
			}
			og.images = append(og.images, content)
		}
	}
	for _, match := range metaPropertyFirst.FindAllStringSubmatch(body, -1) {
		set(match[1], util.FixURL(match[2]))
	}
	for _, match := range metaContentFirst.FindAllStringSubmatch(body, -1) {
		set(match[2], util.FixURL(match[1]))
	}
	return og
}

// collectImages scans the raw document for high-resolution candidates.
// Document scan order is preserved in the final list; it approximates
// the original slideshow order but is not guaranteed to match it (the
// two regex passes are concatenated, not interleaved by position).
func collectImages(body string, ogImages []string) []string {
	var candidates []imageCandidate
	for _, match := range widthFirstPattern.FindAllStringSubmatch(body, -1) {
		width, _ := strconv.Atoi(match[1])
		candidates = append(candidates, imageCandidate{
			url:   util.UnescapeUnicodeAmp(match[2]),
			width: width,
		})
	}
	for _, match := range srcFirstPattern.FindAllStringSubmatch(body, -1) {
		width, _ := strconv.Atoi(match[2])
		candidates = append(candidates, imageCandidate{
			url:   util.UnescapeUnicodeAmp(match[1]),
			width: width,
		})
	}

	maxWidth := 0
	for _, c := range candidates {
		if c.width > maxWidth {
			maxWidth = c.width
		}
	}
	// keep only candidates near the best resolution seen
	threshold := 0
	switch {
	case maxWidth > 1000:
		threshold = 1000
	case maxWidth > 640:
		threshold = 640
	}

	var images []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.width >= threshold && !seen[c.url] {
			images = append(images, c.url)
			seen[c.url] = true
		}
	}

	if len(images) == 0 {
		for _, match := range displayURLPattern.FindAllStringSubmatch(body, -1) {
			imageURL := util.UnescapeUnicodeAmp(match[1])
			if imageURL != "" && !seen[imageURL] {
				images = append(images, imageURL)
				seen[imageURL] = true
			}
		}
	}
	if len(images) == 0 {
		images = append(images, ogImages...)
	}
	if len(images) > maxSlideshowImages {
		images = images[:maxSlideshowImages]
	}
	zap.S().Debugf("fallback scrape recovered %d images (max width %d)", len(images), maxWidth)
	return images
}

func fallbackTitle(title, placeholder string) string {
	if title != "" {
		return title
	}
	return placeholder
}
