package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kingsaver/cache"
	"kingsaver/models"
	"kingsaver/util"
)

// Pipeline runs one resolution request end to end: validate, expand,
// cache lookup, platform fetch, cache store. Constructed once per
// process; the cache is its only shared mutable state.
type Pipeline struct {
	cache *cache.Cache
}

func NewPipeline(infoCache *cache.Cache) *Pipeline {
	return &Pipeline{cache: infoCache}
}

func (p *Pipeline) Resolve(
	ctx context.Context,
	platform *models.Platform,
	rawURL string,
) (*models.MediaInfo, error) {
	// cheap synchronous guard, before any network or subprocess work
	if !platform.Matches(rawURL) {
		return nil, fmt.Errorf(
			"%w: this looks like it might belong to another platform, please use a %s link",
			util.ErrInvalidPlatformURL, platform.Name,
		)
	}

	contentURL := rawURL
	if platform.IsShortURL(rawURL) {
		contentURL = util.ExpandURL(ctx, rawURL)
		if base, err := util.ExtractBaseHost(contentURL); err == nil && !platform.KnownHost(base) {
			zap.S().Warnf("expanded URL host %q is not a known %s host", base, platform.Name)
		}
	}

	// cache key is the original pre-expansion URL
	if p.cache != nil {
		if info, ok := p.cache.Get(rawURL); ok {
			zap.S().Debugf("returning cached info for %s", rawURL)
			return info, nil
		}
	}

	zap.S().Infof("fetching %s info for %s", platform.CodeName, contentURL)
	info, err := platform.Fetch(ctx, contentURL)
	if err != nil {
		zap.S().Errorf("failed to resolve %s: %v", rawURL, err)
		return nil, err
	}

	if p.cache != nil {
		p.cache.Set(rawURL, info)
	}
	return info, nil
}

// UserMessage reduces an internal error chain to the single message a
// client is allowed to see. Raw subprocess stderr never leaves the
// pipeline boundary unfiltered.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return util.GetLastError(err).Error()
}
