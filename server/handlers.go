package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"kingsaver/core"
	"kingsaver/database"
	"kingsaver/ext"
	"kingsaver/util"
	"kingsaver/ytdlp"
)

type infoRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

var contentTypeExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"audio/mpeg":      ".mp3",
	"audio/mp4":       ".m4a",
	"application/zip": ".zip",
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Warnf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = core.UserMessage(err)
	}
	respondJSON(w, status, resp)
}

func (s *Server) handleInfo(codeName string) http.HandlerFunc {
	platform := ext.FindByCodeName(codeName)
	return func(w http.ResponseWriter, r *http.Request) {
		var req infoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			respondError(w, http.StatusBadRequest, "url is required", nil)
			return
		}
		info, err := s.pipeline.Resolve(r.Context(), platform, req.URL)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to get video information", err)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// handleExtractorDownload pipes the extractor subprocess straight to the
// client. The process is killed when the client disconnects.
func (s *Server) handleExtractorDownload(codeName string) http.HandlerFunc {
	platform := ext.FindByCodeName(codeName)
	return func(w http.ResponseWriter, r *http.Request) {
		contentURL := r.URL.Query().Get("url")
		if contentURL == "" {
			respondError(w, http.StatusBadRequest, "url is required", nil)
			return
		}
		if !platform.Matches(contentURL) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("not a %s link", platform.Name), nil)
			return
		}
		formatID := r.URL.Query().Get("itag")

		stream, err := ytdlp.Default().Stream(
			r.Context(), contentURL, formatID,
			ytdlp.OptionsForPlatform(platform),
		)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to start download", err)
			return
		}
		defer stream.Close()

		fileName := fmt.Sprintf(
			"king_saver_%s_%d.mp4",
			platform.CodeName, time.Now().UnixMilli(),
		)
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

		written, err := io.Copy(w, stream)
		if err != nil {
			// headers already sent, nothing to do but log
			zap.S().Warnf("download of %s aborted after %s: %v",
				contentURL, humanize.Bytes(uint64(written)), err)
			return
		}
		zap.S().Infof("streamed %s for %s", humanize.Bytes(uint64(written)), contentURL)
	}
}

// handleProxyDownload fetches a direct media URL server side so browsers
// get a same-origin attachment instead of a cross-site redirect.
func (s *Server) handleProxyDownload(w http.ResponseWriter, r *http.Request) {
	mediaURL := r.URL.Query().Get("url")
	if mediaURL == "" {
		respondError(w, http.StatusBadRequest, "url is required", nil)
		return
	}
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, mediaURL, nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid url", err)
		return
	}
	req.Header.Set("User-Agent", util.ChromeUA)
	resp, err := util.GetHTTPSession().Do(req)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch media", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		respondError(w, http.StatusBadGateway,
			fmt.Sprintf("upstream returned %d", resp.StatusCode), nil)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	fileName := sanitizeFileName(r.URL.Query().Get("filename"), 10)
	if fileName == "" {
		fileName = "download"
	}
	if extension, ok := contentTypeExtensions[contentType]; ok {
		fileName += extension
	}

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if length := resp.Header.Get("Content-Length"); length != "" {
		w.Header().Set("Content-Length", length)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		zap.S().Warnf("proxy download of %s aborted after %s: %v",
			mediaURL, humanize.Bytes(uint64(written)), err)
		return
	}
	zap.S().Infof("proxied %s for %s", humanize.Bytes(uint64(written)), mediaURL)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !database.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "visit tracking is not enabled", nil)
		return
	}
	stats, err := database.GetVisitStats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func sanitizeFileName(name string, maxLen int) string {
	name = filenameSanitizer.ReplaceAllString(name, "_")
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}
