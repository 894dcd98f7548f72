package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/config"
	"github.com/vialtyfake/vialty-blog/internal/images"
	"github.com/vialtyfake/vialty-blog/internal/store"
	"github.com/vialtyfake/vialty-blog/internal/transport/http"
)

type Application struct {
	Config *config.Config
	Logger *zap.Logger
	Store  store.DocumentStore
	Router http.Router
}

func Initialize() (*Application, error) {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	st := openStore(cfg, logger)
	imgs := images.NewService(openImageStorage(cfg, logger), logger)
	r := http.NewRouter(cfg, logger, st, imgs)

	return &Application{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Router: r,
	}, nil
}

// openStore connects to Redis when configured; any failure falls back to the
// in-memory store so a missing backend never takes the service down.
func openStore(cfg *config.Config, logger *zap.Logger) store.DocumentStore {
	if cfg.RedisURL == "" && cfg.RedisAddr == "" {
		logger.Info("no redis configured, using in-memory store")
		return store.NewMemoryStore()
	}
	rs, err := store.NewRedisStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory store", zap.Error(err))
		return store.NewMemoryStore()
	}
	logger.Info("connected to redis")
	return rs
}

func openImageStorage(cfg *config.Config, logger *zap.Logger) images.Storage {
	if cfg.ImageDir == "" {
		logger.Info("no image directory configured, storing images in memory")
		return images.NewMemStorage()
	}
	ds, err := images.NewDirStorage(cfg.ImageDir)
	if err != nil {
		logger.Warn("image directory unusable, storing images in memory",
			zap.String("dir", cfg.ImageDir), zap.Error(err))
		return images.NewMemStorage()
	}
	return ds
}

func (a *Application) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("store close", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}
