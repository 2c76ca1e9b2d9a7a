package main

import (
	"os/exec"

	"go.uber.org/zap"

	"kingsaver/cache"
	"kingsaver/config"
	"kingsaver/core"
	"kingsaver/database"
	"kingsaver/ext"
	"kingsaver/logger"
	"kingsaver/server"
)

func main() {
	logger.Init()
	defer logger.Sync()

	// load environment variables and configurations
	config.Load()
	logger.SetLevel(config.Env.LogLevel)

	zap.S().Debugf("loaded %d platforms", len(ext.List))

	// check for the extractor binary
	if _, err := exec.LookPath(config.Env.ExtractorPath); err != nil {
		zap.S().Warnf("extractor binary %q not found in PATH, extraction will fail", config.Env.ExtractorPath)
	}

	// setup analytics database
	database.Start()

	infoCache := cache.New(config.Env.CacheTTL, config.Env.CacheSweepInterval)
	infoCache.Start()
	defer infoCache.Stop()

	pipeline := core.NewPipeline(infoCache)
	if err := server.New(pipeline).Run(); err != nil {
		zap.S().Fatalf("server stopped: %v", err)
	}
}
