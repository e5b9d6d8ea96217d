package cmd

import (
	"fmt"
	"log/slog"

	"captionforge/internal/config"
	"captionforge/internal/store"
	"captionforge/internal/translate"
	"captionforge/internal/worker"
)

// app bundles the wired collaborators every subcommand needs.
type app struct {
	cfg      *config.Config
	videos   *store.VideoStore
	captions *store.CaptionStore
	configs  *store.ConfigStore
	worker   *worker.Worker
}

// newApp wires the stores and worker from the loaded configuration. The
// translation pool is only built when API keys are configured.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	blobs, err := store.NewFSStore(cfg.Paths.Data)
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}

	videos := store.NewVideoStore(blobs)
	captions := store.NewCaptionStore(blobs)
	configs := store.NewConfigStore(blobs)

	var pool *translate.Pool
	if len(cfg.Translate.APIKeys) > 0 {
		translator, err := translate.NewGeminiTranslator(cfg.Translate.Model, cfg.Translate.APIKeys)
		if err != nil {
			return nil, err
		}
		pool = translate.NewPool(translator, cfg.Translate.PoolSize, cfg.Translate.RateLimitPerMin)
	} else {
		slog.Warn("no translation API keys configured, translation disabled")
	}

	return &app{
		cfg:      cfg,
		videos:   videos,
		captions: captions,
		configs:  configs,
		worker:   worker.New(cfg, videos, captions, configs, pool, nil),
	}, nil
}
