package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"kingsaver/config"
	"kingsaver/core"
	"kingsaver/ext"
)

type Server struct {
	pipeline *core.Pipeline
}

func New(pipeline *core.Pipeline) *Server {
	return &Server{pipeline: pipeline}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		// legacy path, tiktok only
		r.Post("/info", s.handleInfo("tiktok"))

		for _, platform := range ext.List {
			r.Post("/"+platform.CodeName+"/info", s.handleInfo(platform.CodeName))
			r.Get("/"+platform.CodeName+"/download", s.handleExtractorDownload(platform.CodeName))
		}

		r.Get("/download", s.handleProxyDownload)
		r.Get("/download-zip", s.handleZipDownload)

		r.With(middleware.BasicAuth("stats", map[string]string{
			config.Env.StatsUser: config.Env.StatsPassword,
		})).Get("/stats", s.handleStats)
	})
	return r
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", config.Env.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Router(),
		ReadTimeout: 30 * time.Second,
		// no write timeout: downloads stream for as long as they need
	}
	zap.S().Infof("server listening on %s", addr)
	return srv.ListenAndServe()
}
