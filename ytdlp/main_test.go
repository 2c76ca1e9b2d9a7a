package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kingsaver/enums"
	"kingsaver/models"
	"kingsaver/util"
)

// fakeExtractor writes a shell script standing in for the real binary.
func fakeExtractor(t *testing.T, script string) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-extractor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("failed to write fake extractor: %v", err)
	}
	return &Client{Path: path}
}

func TestExtractParsesOutputDespiteExitCode(t *testing.T) {
	c := fakeExtractor(t, `
echo '{"id":"v1","title":"t","duration":5}'
echo 'ERROR: postprocessing failed' >&2
exit 1
`)
	raw, err := c.Extract(context.Background(), "https://example.com/v1", nil)
	if err != nil {
		t.Fatalf("a valid document should win over a nonzero exit: %v", err)
	}
	if !strings.Contains(string(raw), `"id":"v1"`) {
		t.Errorf("unexpected document: %s", raw)
	}
}

func TestExtractNoVideoFound(t *testing.T) {
	c := fakeExtractor(t, `
echo 'ERROR: There is no video in this post' >&2
exit 1
`)
	_, err := c.Extract(context.Background(), "https://example.com/photo", nil)
	if !errors.Is(err, util.ErrNoVideoFound) {
		t.Fatalf("expected ErrNoVideoFound, got %v", err)
	}
}

func TestExtractFatalError(t *testing.T) {
	c := fakeExtractor(t, `
echo 'ERROR: Unsupported URL: https://example.com' >&2
exit 2
`)
	_, err := c.Extract(context.Background(), "https://example.com", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "code 2") || !strings.Contains(err.Error(), "Unsupported URL") {
		t.Errorf("error should carry exit code and stderr message, got %v", err)
	}
}

func TestExtractEmptySuccess(t *testing.T) {
	c := fakeExtractor(t, "exit 0")
	_, err := c.Extract(context.Background(), "https://example.com", nil)
	if !errors.Is(err, util.ErrExtractorEmpty) {
		t.Fatalf("expected ErrExtractorEmpty, got %v", err)
	}
}

func TestGetMediaInfoUsesFallbackOnce(t *testing.T) {
	c := fakeExtractor(t, `
echo 'ERROR: There is no video in this post' >&2
exit 1
`)
	calls := 0
	c.Fallback = func(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
		calls++
		return &models.MediaInfo{
			ID:     "image_1",
			Title:  "Photo",
			Images: []string{"a.jpg"},
			Type:   enums.MediaTypeSlideshow,
		}, nil
	}

	info, err := c.GetMediaInfo(context.Background(), "https://example.com/photo", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fallback should run exactly once, ran %d times", calls)
	}
	if !info.IsSlideshow() || info.OriginalURL != "https://example.com/photo" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestGetMediaInfoKeepsExtractorErrorWhenFallbackFails(t *testing.T) {
	c := fakeExtractor(t, `
echo 'ERROR: No video formats found' >&2
exit 1
`)
	c.Fallback = func(ctx context.Context, contentURL string) (*models.MediaInfo, error) {
		return nil, errors.New("scrape failed")
	}

	_, err := c.GetMediaInfo(context.Background(), "https://example.com/photo", nil)
	if !errors.Is(err, util.ErrNoVideoFound) {
		t.Fatalf("the original extractor error should survive a failed fallback, got %v", err)
	}
}

func TestErrorLines(t *testing.T) {
	stderr := "WARNING: something\nERROR: first\nnoise\nERROR: second\n"
	if got := errorLines(stderr); got != "ERROR: first ERROR: second" {
		t.Errorf("unexpected error lines %q", got)
	}
	if got := errorLines("  just noise  \n"); got != "just noise" {
		t.Errorf("expected whole stderr fallback, got %q", got)
	}
}
