package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"kingsaver/config"
	"kingsaver/models"
	"kingsaver/scraper"
	"kingsaver/util"
)

// stderr phrasings that mean "this post has no playable video", which
// triggers the image fallback instead of a hard failure.
var noVideoMarkers = []string{
	"There is no video in this post",
	"No video formats found",
}

type Options struct {
	CookiesFile string
	UserAgent   string
}

// OptionsForPlatform builds extractor options from a platform's cookie
// configuration. Nil when the platform has none.
func OptionsForPlatform(platform *models.Platform) *Options {
	cookiesFile := util.EnsureCookiesFile(platform.CookiesEnv)
	if cookiesFile == "" {
		return nil
	}
	return &Options{
		CookiesFile: cookiesFile,
		UserAgent:   util.ChromeUA,
	}
}

// Client invokes the external extraction tool as a subprocess and
// classifies its outcome. The rest of the pipeline never touches raw
// process handles.
type Client struct {
	Path string

	// Fallback rescues "no video" posts; defaults to the HTML scraper.
	Fallback func(ctx context.Context, contentURL string) (*models.MediaInfo, error)
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

func Default() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = New(config.Env.ExtractorPath)
	})
	return defaultClient
}

func New(path string) *Client {
	return &Client{
		Path:     path,
		Fallback: scraper.ScrapeFallback,
	}
}

// Extract runs the tool in info mode and returns the raw JSON document
// it produced. No timeout is imposed here; callers layer one through
// ctx if they need it.
func (c *Client) Extract(ctx context.Context, contentURL string, opts *Options) ([]byte, error) {
	args := []string{"--dump-json", "--ignore-no-formats-error", "--no-warnings"}
	args = appendOptions(args, opts)
	args = append(args, contentURL)

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	// attempt to parse regardless of exit code: the tool may emit a
	// complete document before a non-fatal warning aborts it
	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) > 0 {
		if json.Valid(out) {
			return out, nil
		}
		zap.S().Warnf("extractor produced unparseable output (%d bytes)", len(out))
	}

	if runErr != nil {
		message := errorLines(stderr.String())
		for _, marker := range noVideoMarkers {
			if strings.Contains(message, marker) {
				return nil, util.ErrNoVideoFound
			}
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, fmt.Errorf("extractor exited with code %d: %s", exitCode, message)
	}
	return nil, util.ErrExtractorEmpty
}

// errorLines concatenates stderr lines carrying the ERROR: marker,
// falling back to the whole stderr when none match.
func errorLines(stderr string) string {
	var matched []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, "ERROR:") {
			matched = append(matched, strings.TrimSpace(line))
		}
	}
	if len(matched) == 0 {
		return strings.TrimSpace(stderr)
	}
	return strings.Join(matched, " ")
}

// GetMediaInfo resolves a URL end to end: extract, rescue "no video"
// posts through the fallback scraper exactly once, then normalize.
// When the scrape also fails the original extractor error is returned,
// not the scrape error.
func (c *Client) GetMediaInfo(ctx context.Context, contentURL string, opts *Options) (*models.MediaInfo, error) {
	raw, err := c.Extract(ctx, contentURL, opts)
	if err != nil {
		if errors.Is(err, util.ErrNoVideoFound) && c.Fallback != nil {
			zap.S().Infof("no video found by extractor, trying image fallback: %s", contentURL)
			info, scrapeErr := c.Fallback(ctx, contentURL)
			if scrapeErr != nil {
				zap.S().Warnf("fallback scraping failed: %v", scrapeErr)
				return nil, err
			}
			info.OriginalURL = contentURL
			return info, nil
		}
		return nil, err
	}
	return Normalize(raw, contentURL)
}

func appendOptions(args []string, opts *Options) []string {
	if opts == nil {
		return args
	}
	if opts.CookiesFile != "" {
		args = append(args, "--cookies", opts.CookiesFile)
	}
	if opts.UserAgent != "" {
		args = append(args, "--user-agent", opts.UserAgent)
	}
	return args
}
