package ytdlp

import (
	"reflect"
	"testing"

	"kingsaver/enums"
)

const videoDoc = `{
	"id": "v1",
	"title": "Hello",
	"duration": 12.3,
	"view_count": 42,
	"formats": [
		{"format_id": "18", "ext": "mp4", "width": 640, "height": 360, "vcodec": "avc1", "acodec": "mp4a", "url": "u360"},
		{"format_id": "22", "ext": "mp4", "width": 1280, "height": 720, "vcodec": "avc1", "acodec": "mp4a", "url": "u720"},
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a", "url": "uaudio"}
	]
}`

func TestNormalizeVideo(t *testing.T) {
	info, err := Normalize([]byte(videoDoc), "https://example.com/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeVideo {
		t.Errorf("expected video type, got %q", info.Type)
	}
	if info.Duration != 12 {
		t.Errorf("expected duration 12, got %d", info.Duration)
	}
	if info.ViewCount.Int64 != 42 || !info.ViewCount.Valid {
		t.Errorf("unexpected view count %+v", info.ViewCount)
	}
	if len(info.Formats) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(info.Formats))
	}
	// sorted by descending height
	if info.Formats[0].FormatID != "22" || info.Formats[0].QualityLabel != "720p" {
		t.Errorf("unexpected best format %+v", info.Formats[0])
	}
	audio := info.Formats[2]
	if audio.QualityLabel != "audio" || audio.HasVideo || !audio.HasAudio {
		t.Errorf("unexpected audio format %+v", audio)
	}
	if info.OriginalURL != "https://example.com/v1" {
		t.Errorf("unexpected original url %q", info.OriginalURL)
	}
}

func TestNormalizeZeroDurationBecomesSlideshow(t *testing.T) {
	info, err := Normalize([]byte(`{"id": "p1", "title": "Photo post", "duration": 0}`), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeSlideshow {
		t.Errorf("expected slideshow type, got %q", info.Type)
	}
	if info.Images == nil || len(info.Images) != 0 {
		t.Errorf("expected empty non-nil image list, got %#v", info.Images)
	}
}

func TestNormalizePlaylistEntries(t *testing.T) {
	doc := `{
		"id": "c1",
		"title": "Carousel",
		"_type": "playlist",
		"entries": [
			{"thumbnails": [{"url": "small", "width": 320}, {"url": "big", "width": 1080}]},
			{"thumbnail": "second"},
			{"url": "third"}
		]
	}`
	info, err := Normalize([]byte(doc), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeSlideshow {
		t.Errorf("expected slideshow type, got %q", info.Type)
	}
	want := []string{"big", "second", "third"}
	if !reflect.DeepEqual(info.Images, want) {
		t.Errorf("expected images %v, got %v", want, info.Images)
	}
	if info.Thumbnail != "big" {
		t.Errorf("expected thumbnail from first image, got %q", info.Thumbnail)
	}
}

func TestNormalizeImagesList(t *testing.T) {
	doc := `{"id": "p2", "duration": 30, "images": ["a", "b"]}`
	info, err := Normalize([]byte(doc), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != enums.MediaTypeSlideshow {
		t.Errorf("a post with images is a slideshow regardless of duration, got %q", info.Type)
	}
	if !reflect.DeepEqual(info.Images, []string{"a", "b"}) {
		t.Errorf("unexpected images %v", info.Images)
	}
}

func TestNormalizeTitleFallback(t *testing.T) {
	info, err := Normalize([]byte(`{"id": "1", "duration": 5, "description": "some caption"}`), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "some caption" {
		t.Errorf("expected description fallback, got %q", info.Title)
	}

	info, err = Normalize([]byte(`{"id": "1", "duration": 5}`), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Video" {
		t.Errorf("expected placeholder title, got %q", info.Title)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	first, err := Normalize([]byte(videoDoc), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Normalize([]byte(videoDoc), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("normalizing the same document twice should yield identical results")
	}
}

func TestNormalizeRejectsInvalidJSON(t *testing.T) {
	if _, err := Normalize([]byte("not json"), "u"); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}
