package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const maxRedirects = 5

// ExpandURL resolves a shortened link to its canonical URL by following
// redirects, HEAD first and GET when the server rejects HEAD. Expansion
// failure is never fatal: the original URL is returned unchanged and
// only degrades ID extraction downstream.
func ExpandURL(ctx context.Context, rawURL string) string {
	expanded, err := followRedirects(ctx, http.MethodHead, rawURL)
	if err == nil {
		return expanded
	}
	expanded, err = followRedirects(ctx, http.MethodGet, rawURL)
	if err == nil {
		return expanded
	}
	zap.S().Warnf("failed to expand URL %s: %v", rawURL, err)
	return rawURL
}

func followRedirects(ctx context.Context, method string, rawURL string) (string, error) {
	client := &http.Client{
		Transport: GetBaseTransport(),
		Timeout:   20 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", ChromeUA)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	// anything 2xx-3xx is acceptable as the end of a redirect chain
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Request.URL.String(), nil
}

func FixURL(rawURL string) string {
	return strings.ReplaceAll(rawURL, "&amp;", "&")
}

// UnescapeUnicodeAmp rewrites \u0026 escapes left over from JSON blobs
// embedded in scraped HTML.
func UnescapeUnicodeAmp(rawURL string) string {
	return strings.ReplaceAll(rawURL, `\u0026`, "&")
}

// ExtractBaseHost returns the first label of the URL's eTLD+1, e.g.
// "tiktok" for https://vt.tiktok.com/xyz.
func ExtractBaseHost(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	etld, err := publicsuffix.EffectiveTLDPlusOne(parsedURL.Hostname())
	if err != nil {
		return "", fmt.Errorf("failed to get eTLD+1: %w", err)
	}
	parts := strings.Split(etld, ".")
	if len(parts) == 0 {
		return "", errors.New("invalid domain structure")
	}
	return parts[0], nil
}
