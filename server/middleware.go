package server

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/guregu/null/v6/zero"
	"go.uber.org/zap"

	"kingsaver/database"
	"kingsaver/ext"
	"kingsaver/models"
)

var staticAssetPattern = regexp.MustCompile(`\.(css|js|jpg|png|ico|svg|woff2)$`)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		zap.S().Debugf("[REQ] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		zap.S().Infof(
			"[RES] %s %s %d - %s",
			r.Method, r.URL.Path, ww.Status(), time.Since(start),
		)

		if r.URL.Path == "/api/stats" || staticAssetPattern.MatchString(r.URL.Path) {
			return
		}
		database.TrackVisit(&models.Visit{
			Path:      r.URL.Path,
			Method:    r.Method,
			IP:        zero.StringFrom(r.RemoteAddr),
			UserAgent: zero.StringFrom(r.UserAgent()),
			Platform:  inferPlatform(r.URL.Path),
		})
	})
}

func inferPlatform(path string) string {
	for _, platform := range ext.List {
		if strings.Contains(path, platform.CodeName) {
			return platform.Name
		}
	}
	if path == "/api/info" {
		return "TikTok"
	}
	return "Web"
}
