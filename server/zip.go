package server

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"kingsaver/util"
)

// handleZipDownload bundles a set of image URLs into a single zip
// streamed directly to the client. Individual fetch failures are
// skipped so one dead CDN link does not ruin the whole slideshow.
func (s *Server) handleZipDownload(w http.ResponseWriter, r *http.Request) {
	urls := r.URL.Query()["urls"]
	if len(urls) == 0 {
		respondError(w, http.StatusBadRequest, "urls is required", nil)
		return
	}

	baseName := sanitizeFileName(r.URL.Query().Get("filename"), 50)
	if baseName == "" {
		baseName = "images"
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", baseName+".zip"))

	archive := zip.NewWriter(w)
	defer archive.Close()

	added := 0
	for i, imageURL := range urls {
		if err := addZipEntry(r, archive, imageURL, fmt.Sprintf("%s_%d.jpg", baseName, i+1)); err != nil {
			zap.S().Warnf("skipping image %d: %v", i+1, err)
			continue
		}
		added++
	}
	zap.S().Infof("zipped %d/%d images as %s", added, len(urls), baseName)
}

func addZipEntry(r *http.Request, archive *zip.Writer, imageURL, entryName string) error {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	req.Header.Set("User-Agent", util.ChromeUA)
	resp, err := util.GetHTTPSession().Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	entry, err := archive.Create(entryName)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}
	if _, err := io.Copy(entry, resp.Body); err != nil {
		return fmt.Errorf("failed to write zip entry: %w", err)
	}
	return nil
}
