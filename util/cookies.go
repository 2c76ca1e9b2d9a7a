package util

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aki237/nscjar"
	"go.uber.org/zap"
)

var (
	cookiesMu    sync.Mutex
	cookiesCache = make(map[string]string)
)

// EnsureCookiesFile materializes a Netscape cookie blob from the named
// env variable into a temp file the extractor can consume. Returns an
// empty path when the variable is unset or the blob does not parse.
func EnsureCookiesFile(envVar string) string {
	if envVar == "" {
		return ""
	}
	cookiesMu.Lock()
	defer cookiesMu.Unlock()
	if path, ok := cookiesCache[envVar]; ok {
		return path
	}
	blob := os.Getenv(envVar)
	if blob == "" {
		return ""
	}
	var parser nscjar.Parser
	cookies, err := parser.Unmarshal(strings.NewReader(blob))
	if err != nil {
		zap.S().Warnf("%s is not a valid Netscape cookie file: %v", envVar, err)
		return ""
	}
	path := filepath.Join(os.TempDir(), strings.ToLower(envVar)+".txt")
	if err := os.WriteFile(path, []byte(blob), 0600); err != nil {
		zap.S().Warnf("failed to write cookie file for %s: %v", envVar, err)
		return ""
	}
	zap.S().Debugf("wrote %d cookies for %s", len(cookies), envVar)
	cookiesCache[envVar] = path
	return path
}
