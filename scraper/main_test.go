package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"kingsaver/enums"
	"kingsaver/util"
)

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeFallbackSlideshow(t *testing.T) {
	body := `<html><head>
<meta property="og:title" content="My Post"/>
<meta property="og:image" content="https://cdn.example.com/og.jpg"/>
</head><body><script>
{"config_width":1080,"src":"https://cdn.example.com/a.jpg?x=1\u0026y=2"}
{"config_width":320,"src":"https://cdn.example.com/tiny.jpg"}
{"config_width":1080,"src":"https://cdn.example.com/a.jpg?x=1\u0026y=2"}
{"src":"https://cdn.example.com/b.jpg","config_width":1080}
</script></body></html>`
	srv := servePage(t, body)

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeSlideshow {
		t.Errorf("expected slideshow, got %q", info.Type)
	}
	if info.Title != "My Post" {
		t.Errorf("unexpected title %q", info.Title)
	}
	// 320px candidate dropped, duplicate dropped, \u0026 unescaped,
	// both field orders picked up
	want := []string{
		"https://cdn.example.com/a.jpg?x=1&y=2",
		"https://cdn.example.com/b.jpg",
	}
	if !reflect.DeepEqual(info.Images, want) {
		t.Errorf("expected images %v, got %v", want, info.Images)
	}
	if info.Thumbnail != info.Images[0] {
		t.Errorf("thumbnail should be the first image, got %q", info.Thumbnail)
	}
}

func TestScrapeFallbackMidResolutionThreshold(t *testing.T) {
	body := `<html><head>
<meta property="og:image" content="https://cdn.example.com/og.jpg"/>
</head><body>
{"config_width":800,"src":"https://cdn.example.com/mid.jpg"}
{"config_width":320,"src":"https://cdn.example.com/tiny.jpg"}
</body></html>`
	srv := servePage(t, body)

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://cdn.example.com/mid.jpg"}
	if !reflect.DeepEqual(info.Images, want) {
		t.Errorf("expected images %v, got %v", want, info.Images)
	}
}

func TestScrapeFallbackVideo(t *testing.T) {
	body := `<html><head>
<meta property="og:title" content="A clip"/>
<meta property="og:image" content="https://cdn.example.com/thumb.jpg"/>
<meta property="og:video" content="https://cdn.example.com/clip.mp4?a=1&amp;b=2"/>
</head></html>`
	srv := servePage(t, body)

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeVideo {
		t.Errorf("expected video, got %q", info.Type)
	}
	if info.PlayURL != "https://cdn.example.com/clip.mp4?a=1&b=2" {
		t.Errorf("unexpected play url %q", info.PlayURL)
	}
	if !strings.HasPrefix(info.ID, "video_") {
		t.Errorf("unexpected id %q", info.ID)
	}
}

func TestScrapeFallbackDisplayURL(t *testing.T) {
	body := `<html><head>
<meta property="og:image" content="https://cdn.example.com/og.jpg"/>
</head><body>
{"display_url":"https://cdn.example.com/full.jpg"}
</body></html>`
	srv := servePage(t, body)

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://cdn.example.com/full.jpg"}
	if !reflect.DeepEqual(info.Images, want) {
		t.Errorf("expected display_url fallback %v, got %v", want, info.Images)
	}
}

func TestScrapeFallbackOGImageLastResort(t *testing.T) {
	body := `<html><head>
<meta property="og:image" content="https://cdn.example.com/og.jpg"/>
</head></html>`
	srv := servePage(t, body)

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://cdn.example.com/og.jpg"}
	if !reflect.DeepEqual(info.Images, want) {
		t.Errorf("expected og:image fallback %v, got %v", want, info.Images)
	}
	if info.Title != "Photo" {
		t.Errorf("expected placeholder title, got %q", info.Title)
	}
}

func TestScrapeFallbackNoMetadata(t *testing.T) {
	srv := servePage(t, "<html><head><title>nothing here</title></head></html>")

	_, err := ScrapeFallback(context.Background(), srv.URL)
	if !errors.Is(err, util.ErrNoImageMetadata) {
		t.Fatalf("expected ErrNoImageMetadata, got %v", err)
	}
}

func TestScrapeFallbackImageCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<meta property="og:image" content="https://cdn.example.com/og.jpg"/>`)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, `{"config_width":1080,"src":"https://cdn.example.com/%d.jpg"}`+"\n", i)
	}
	srv := servePage(t, b.String())

	info, err := ScrapeFallback(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Images) != maxSlideshowImages {
		t.Errorf("expected %d images, got %d", maxSlideshowImages, len(info.Images))
	}
}

func TestScrapeFallbackSendsMobileUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<meta property="og:image" content="https://cdn.example.com/og.jpg"/>`)
	}))
	defer srv.Close()

	if _, err := ScrapeFallback(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotUA, "Mobile") {
		t.Errorf("pages must be fetched with a mobile user agent, got %q", gotUA)
	}
}
