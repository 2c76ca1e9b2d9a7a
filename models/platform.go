package models

import (
	"context"
	"regexp"
	"strings"
)

// Platform describes one supported source site: how to recognize its
// URLs and how to resolve them into a MediaInfo.
type Platform struct {
	Name     string
	CodeName string

	// URLPattern is the cheap pre-flight allowlist, checked before any
	// network or subprocess work.
	URLPattern *regexp.Regexp

	// ShortURLPattern marks links that need redirect expansion first.
	ShortURLPattern *regexp.Regexp

	Hosts []string

	// CookiesEnv names an env variable holding a Netscape cookie blob
	// for authenticated extraction.
	CookiesEnv string

	Fetch func(ctx context.Context, contentURL string) (*MediaInfo, error)
}

func (platform *Platform) Matches(rawURL string) bool {
	return platform.URLPattern.MatchString(rawURL)
}

func (platform *Platform) IsShortURL(rawURL string) bool {
	return platform.ShortURLPattern != nil &&
		platform.ShortURLPattern.MatchString(rawURL)
}

// KnownHost reports whether a base host (eTLD+1 first label, e.g.
// "tiktok") belongs to this platform's host list.
func (platform *Platform) KnownHost(base string) bool {
	for _, host := range platform.Hosts {
		if host == base ||
			strings.HasPrefix(host, base+".") ||
			strings.Contains(host, "."+base+".") {
			return true
		}
	}
	return false
}
